// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fjacquet/bill-csv/internal/common"
	"fjacquet/bill-csv/internal/container"
	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/normalizer"
	"fjacquet/bill-csv/internal/parsererror"
	"fjacquet/bill-csv/internal/report"
)

// Normalize runs the record normalizer and writes the canonical CSV.
func Normalize(c *container.Container) (normalizer.Result, error) {
	return c.GetNormalizer().Normalize()
}

// Annotate normalizes all sources, classifies every record and rewrites the
// transactions CSV with the classification columns. When classification
// fails the canonical CSV stays as normalized and no annotated file is written.
func Annotate(ctx context.Context, c *container.Container) (string, []models.AnnotatedTransaction, error) {
	annotator, err := c.GetAnnotator(ctx)
	if err != nil {
		return "", nil, err
	}

	result, err := Normalize(c)
	if err != nil {
		return "", nil, err
	}

	annotated, err := annotator.Annotate(ctx, result.Records)
	if err != nil {
		return "", nil, err
	}

	if err := common.WriteCSVFile(result.OutputPath, annotated, c.GetConfig().Delimiter(), c.GetLogger()); err != nil {
		return "", nil, fmt.Errorf("failed to write annotated transactions: %w", err)
	}
	c.GetLogger().Info("Annotated transactions written",
		logging.F(logging.FieldOutputFile, result.OutputPath),
		logging.F(logging.FieldCount, len(annotated)))
	return result.OutputPath, annotated, nil
}

// BuildReport reads a normalized or annotated CSV and aggregates it. An empty
// inputPath selects the configured transactions file.
func BuildReport(c *container.Container, inputPath string) (models.ReportData, error) {
	cfg := c.GetConfig()
	if inputPath == "" {
		path, err := cfg.TransactionsPath()
		if err != nil {
			return models.ReportData{}, err
		}
		inputPath = path
	}

	rows, err := common.ReadCSVFile[models.AnnotatedTransaction](inputPath, cfg.Delimiter(), c.GetLogger())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.ReportData{}, &parsererror.MissingFileError{Path: inputPath}
		}
		return models.ReportData{}, err
	}

	data := c.GetAggregator().SummarizeAnnotated(rows)
	if data.ReportPeriod == "" {
		data.ReportPeriod = cfg.Metadata.ReportPeriod
	}
	data.RunID = c.GetRunID()
	return data, nil
}

// WriteReport renders data in format and writes it to outputPath, or to the
// configured report location when outputPath is empty.
func WriteReport(c *container.Container, data models.ReportData, format, outputPath string) (string, error) {
	content, err := c.GetReportGenerator().GenerateReport(data, format)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		path, err := c.GetConfig().ReportPath(report.Extension(format))
		if err != nil {
			return "", err
		}
		outputPath = path
	}

	if err := common.WriteBytesAtomic(outputPath, content, c.GetLogger()); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	c.GetLogger().Info("Report written",
		logging.F(logging.FieldOutputFile, outputPath),
		logging.F(logging.FieldFormat, format))
	return outputPath, nil
}

// Classify classifies a single transaction with the configured classifier
// and persists the classification cache when one is configured.
func Classify(ctx context.Context, c *container.Container, tx models.Transaction) (models.Classification, error) {
	annotator, err := c.GetAnnotator(ctx)
	if err != nil {
		return models.Classification{}, err
	}
	annotated, err := annotator.Annotate(ctx, []models.Transaction{tx})
	if err != nil {
		return models.Classification{}, err
	}
	row := annotated[0]
	return models.Classification{
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		Reason:       row.CategoryReason,
	}, nil
}
