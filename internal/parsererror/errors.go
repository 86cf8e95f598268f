// Package parsererror defines the error types reported by the pipeline.
// Callers inspect them with errors.As.
package parsererror

import (
	"fmt"
	"strings"
)

// MissingFileError reports a configured input path that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing data file: %s", e.Path)
}

// UnrecognizedSchemaError reports a header row that matches no known vendor schema.
type UnrecognizedSchemaError struct {
	FilePath string
	Headers  []string
}

func (e *UnrecognizedSchemaError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("unable to detect schema for csv file '%s': headers [%s]",
			e.FilePath, strings.Join(e.Headers, ", "))
	}
	return fmt.Sprintf("unable to detect schema for headers [%s]", strings.Join(e.Headers, ", "))
}

// InvalidAmountError reports amount text that is not a decimal literal.
// FilePath and Row are filled in by the stage that knows them.
type InvalidAmountError struct {
	Value    string
	FilePath string
	Row      int
	Err      error
}

func (e *InvalidAmountError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("invalid amount value '%s' in file '%s' row %d", e.Value, e.FilePath, e.Row)
	}
	return fmt.Sprintf("invalid amount value '%s'", e.Value)
}

func (e *InvalidAmountError) Unwrap() error {
	return e.Err
}

// ClassificationError reports a classifier failure for one transaction.
type ClassificationError struct {
	Transaction string
	Provider    string
	Err         error
}

func (e *ClassificationError) Error() string {
	if e.Transaction == "" {
		return fmt.Sprintf("classification failed using %s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("classification failed for %s using %s: %v", e.Transaction, e.Provider, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid or incomplete configuration value.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}
