package billparser

import (
	"errors"
	"testing"

	"fjacquet/bill-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSchema(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected SchemaID
	}{
		{"alipay export", []string{"交易时间", "交易对方", "商品说明", "收/支", "金额", "备注"}, Alipay},
		{"wechat export", []string{"交易时间", "交易对方", "商品", "收/支", "金额(元)", "备注"}, WeChat},
		{"wechat wins when both present", []string{"金额", "金额(元)"}, WeChat},
		{"headers are trimmed", []string{" 交易时间 ", " 金额 "}, Alipay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := DetectSchema(tt.headers)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, schema.ID)
		})
	}
}

func TestDetectSchema_Unrecognized(t *testing.T) {
	headers := []string{"date", "amount"}
	_, err := DetectSchema(headers)
	require.Error(t, err)

	var schemaErr *parsererror.UnrecognizedSchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, headers, schemaErr.Headers)
}

func TestDetectSchema_NoFuzzyMatching(t *testing.T) {
	for _, headers := range [][]string{{"金额(美元)"}, {"总金额"}, {"金  额"}, {}} {
		_, err := DetectSchema(headers)
		assert.Error(t, err, "headers %v", headers)
	}
}

func TestNewDetector_CustomTable(t *testing.T) {
	custom := Schema{ID: "bank", Marker: "Amount", TimeColumn: "Date", TypeColumn: "Kind", AmountColumn: "Amount"}
	detector := NewDetector([]Schema{custom})

	schema, err := detector.Detect([]string{"Date", "Amount"})
	require.NoError(t, err)
	assert.Equal(t, SchemaID("bank"), schema.ID)

	_, err = detector.Detect([]string{"金额"})
	assert.Error(t, err, "the built-in table is not consulted")
}
