// Package normalizer turns every configured vendor export into one canonical
// transactions CSV.
package normalizer

import (
	"fmt"

	"fjacquet/bill-csv/internal/billparser"
	"fjacquet/bill-csv/internal/common"
	"fjacquet/bill-csv/internal/config"
	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
)

// Result is the outcome of a normalization run.
type Result struct {
	Records    []models.Transaction
	OutputPath string
}

// RecordNormalizer parses the configured sources in order and writes the
// canonical CSV.
type RecordNormalizer struct {
	cfg    *config.Config
	parser *billparser.Parser
	logger logging.Logger
}

// NewRecordNormalizer creates a RecordNormalizer.
func NewRecordNormalizer(cfg *config.Config, parser *billparser.Parser, logger logging.Logger) *RecordNormalizer {
	return &RecordNormalizer{
		cfg:    cfg,
		parser: parser,
		logger: logging.OrDefault(logger),
	}
}

// Collect parses all sources. Records are concatenated in source order, then
// file order, then row order. The first failing file aborts the run.
func (n *RecordNormalizer) Collect() ([]models.Transaction, error) {
	records := []models.Transaction{}

	for _, source := range n.cfg.Sources {
		for _, file := range source.Files {
			path := n.cfg.ResolvePath(file)
			parsed, err := n.parser.ParseFile(path, source.Name)
			if err != nil {
				return nil, fmt.Errorf("source %s: %w", source.Name, err)
			}
			records = append(records, parsed...)
		}
	}

	n.logger.Info("Collected transactions",
		logging.F(logging.FieldCount, len(records)),
		logging.F(logging.FieldPeriod, n.cfg.Metadata.ReportPeriod))
	return records, nil
}

// Normalize collects all records and writes them to the rendered
// output.transactions path. Nothing is written when collection fails.
func (n *RecordNormalizer) Normalize() (Result, error) {
	outputPath, err := n.cfg.TransactionsPath()
	if err != nil {
		return Result{}, err
	}

	records, err := n.Collect()
	if err != nil {
		return Result{}, err
	}

	if err := common.WriteCSVFile(outputPath, records, n.cfg.Delimiter(), n.logger); err != nil {
		return Result{}, fmt.Errorf("failed to write normalized transactions: %w", err)
	}

	n.logger.Info("Wrote normalized transactions",
		logging.F(logging.FieldOutputFile, outputPath),
		logging.F(logging.FieldCount, len(records)))
	return Result{Records: records, OutputPath: outputPath}, nil
}
