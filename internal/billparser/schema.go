// Package billparser detects vendor CSV schemas and maps vendor rows onto
// canonical transactions.
package billparser

import (
	"strings"

	"fjacquet/bill-csv/internal/parsererror"
)

// SchemaID names a known vendor export layout.
type SchemaID string

const (
	Alipay SchemaID = "alipay"
	WeChat SchemaID = "wechat"
)

// Schema describes where a vendor keeps each canonical field.
// Marker is the header whose exact presence identifies the schema.
type Schema struct {
	ID                  SchemaID
	Marker              string
	TimeColumn          string
	CounterpartyColumn  string
	DescriptionColumn   string
	FallbackDescription string
	TypeColumn          string
	AmountColumn        string
}

// Schemas is the detection table, in precedence order. WeChat comes first
// because its marker is the more specific one.
var Schemas = []Schema{
	{
		ID:                  WeChat,
		Marker:              "金额(元)",
		TimeColumn:          "交易时间",
		CounterpartyColumn:  "交易对方",
		DescriptionColumn:   "商品",
		FallbackDescription: "备注",
		TypeColumn:          "收/支",
		AmountColumn:        "金额(元)",
	},
	{
		ID:                  Alipay,
		Marker:              "金额",
		TimeColumn:          "交易时间",
		CounterpartyColumn:  "交易对方",
		DescriptionColumn:   "商品说明",
		FallbackDescription: "备注",
		TypeColumn:          "收/支",
		AmountColumn:        "金额",
	},
}

// Detector picks a schema from a header row.
type Detector struct {
	schemas []Schema
}

// NewDetector returns a detector over schemas; nil means the built-in table.
func NewDetector(schemas []Schema) *Detector {
	if schemas == nil {
		schemas = Schemas
	}
	return &Detector{schemas: schemas}
}

// Detect returns the first schema whose marker header is present.
// Headers are compared after trimming whitespace; matching is exact.
func (d *Detector) Detect(headers []string) (Schema, error) {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = struct{}{}
	}
	for _, schema := range d.schemas {
		if _, ok := present[schema.Marker]; ok {
			return schema, nil
		}
	}
	return Schema{}, &parsererror.UnrecognizedSchemaError{Headers: append([]string(nil), headers...)}
}

// DetectSchema runs the built-in detection table.
func DetectSchema(headers []string) (Schema, error) {
	return NewDetector(nil).Detect(headers)
}
