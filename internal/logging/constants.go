package logging

// Field names shared by all log entries of the pipeline.
const (
	FieldFile         = "file_path"
	FieldSource       = "source"
	FieldSchema       = "schema"
	FieldRow          = "row"
	FieldRawValue     = "raw_value"
	FieldCount        = "count"
	FieldSkipped      = "skipped"
	FieldCategory     = "category"
	FieldReason       = "reason"
	FieldCounterparty = "counterparty"
	FieldProvider     = "provider"
	FieldModel        = "model"
	FieldPeriod       = "report_period"
	FieldRunID        = "run_id"
	FieldOutputFile   = "output_file"
	FieldFormat       = "format"
)
