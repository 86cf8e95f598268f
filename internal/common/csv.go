// Package common provides the CSV file helpers shared by the pipeline stages.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"fjacquet/bill-csv/internal/logging"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultDelimiter separates fields in every file the pipeline writes.
const DefaultDelimiter = ','

// ReadCSVFile unmarshals a headed CSV file into rows of TCSVRow using gocsv
// struct tags. A UTF-8 byte-order mark is tolerated; columns without a
// matching tag are ignored.
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune, logger logging.Logger) ([]TCSVRow, error) {
	logger = logging.OrDefault(logger).WithField(logging.FieldFile, filePath)
	logger.Debug("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(transform.NewReader(file, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.Comma = delimiter

	rows := []TCSVRow{}
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return rows, nil
		}
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Debug("Read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// WriteCSVFile marshals rows to filePath with a header line, even when rows
// is empty. The file is replaced atomically; see WriteFileAtomic.
func WriteCSVFile[TCSVRow any](filePath string, rows []TCSVRow, delimiter rune, logger logging.Logger) error {
	logger = logging.OrDefault(logger).WithField(logging.FieldOutputFile, filePath)

	if rows == nil {
		rows = []TCSVRow{}
	}
	err := WriteFileAtomic(filePath, logger, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		csvWriter.Comma = delimiter
		if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
			return fmt.Errorf("error writing CSV data: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Wrote CSV file", logging.F(logging.FieldCount, len(rows)))
	return nil
}
