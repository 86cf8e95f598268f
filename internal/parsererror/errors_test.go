package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"missing file", &MissingFileError{Path: "data/a.csv"}, "missing data file: data/a.csv"},
		{"schema without path", &UnrecognizedSchemaError{Headers: []string{"date", "amount"}},
			"unable to detect schema for headers [date, amount]"},
		{"schema with path", &UnrecognizedSchemaError{FilePath: "x.csv", Headers: []string{"a"}},
			"unable to detect schema for csv file 'x.csv': headers [a]"},
		{"amount", &InvalidAmountError{Value: "abc"}, "invalid amount value 'abc'"},
		{"amount with row", &InvalidAmountError{Value: "abc", FilePath: "w.csv", Row: 3},
			"invalid amount value 'abc' in file 'w.csv' row 3"},
		{"classification", &ClassificationError{Transaction: "星巴克", Provider: "ollama", Err: errors.New("exit 1")},
			"classification failed for 星巴克 using ollama: exit 1"},
		{"config", &ConfigError{Key: "metadata.report_period", Reason: "must be configured"},
			"invalid configuration metadata.report_period: must be configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.expected)
		})
	}
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	cause := errors.New("no JSON object found")
	wrapped := fmt.Errorf("annotate batch: %w", &ClassificationError{Provider: "gemini", Err: cause})

	var classErr *ClassificationError
	assert.True(t, errors.As(wrapped, &classErr))
	assert.Equal(t, "gemini", classErr.Provider)
	assert.ErrorIs(t, wrapped, cause)

	var amountErr *InvalidAmountError
	assert.False(t, errors.As(wrapped, &amountErr))
}
