package billparser

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/parsererror"
)

// Parser reads whole vendor files: one schema detection per file, then one
// mapping per row.
type Parser struct {
	detector *Detector
	mapper   *Mapper
	logger   logging.Logger
}

// NewParser wires a detector and mapper. A nil detector uses the built-in schemas.
func NewParser(detector *Detector, mapper *Mapper, logger logging.Logger) *Parser {
	if detector == nil {
		detector = NewDetector(nil)
	}
	if mapper == nil {
		mapper = NewMapper(MapperConfig{})
	}
	return &Parser{detector: detector, mapper: mapper, logger: logging.OrDefault(logger)}
}

// Parse maps every row of r. name identifies the input in errors and logs.
func (p *Parser) Parse(r io.Reader, name, source string) ([]models.Transaction, error) {
	table, err := ReadTable(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", name, err)
	}

	schema, err := p.detector.Detect(table.Headers)
	if err != nil {
		var schemaErr *parsererror.UnrecognizedSchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.FilePath = name
		}
		return nil, err
	}

	log := p.logger.WithFields(
		logging.F(logging.FieldFile, name),
		logging.F(logging.FieldSource, source),
		logging.F(logging.FieldSchema, string(schema.ID)),
	)
	log.Debug("Detected CSV schema")

	transactions := make([]models.Transaction, 0, len(table.Rows))
	skipped := 0
	for i, row := range table.Rows {
		tx, ok, err := p.mapper.MapRow(schema, row, source)
		if err != nil {
			var amountErr *parsererror.InvalidAmountError
			if errors.As(err, &amountErr) {
				amountErr.FilePath = name
				// header is line 1
				amountErr.Row = i + 2
				log.Error("Invalid amount in vendor CSV",
					logging.F(logging.FieldRow, amountErr.Row),
					logging.F(logging.FieldRawValue, amountErr.Value))
			}
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}
		transactions = append(transactions, tx)
	}

	log.Info("Parsed vendor CSV file",
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldSkipped, skipped))
	return transactions, nil
}

// ParseFile opens path and parses it. A path that does not exist is a
// *parsererror.MissingFileError.
func (p *Parser) ParseFile(path, source string) ([]models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &parsererror.MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()

	return p.Parse(file, path, source)
}
