package categorizer

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/parsererror"
)

// Annotator classifies a batch of transactions sequentially.
type Annotator struct {
	classifier Classifier
	provider   string
	logger     logging.Logger
}

// NewAnnotator creates an Annotator. provider names the classifier in errors.
func NewAnnotator(classifier Classifier, provider string, logger logging.Logger) *Annotator {
	return &Annotator{
		classifier: classifier,
		provider:   provider,
		logger:     logging.OrDefault(logger),
	}
}

// Annotate classifies every transaction in order. The first failure aborts the
// batch and no partial result is returned. After a complete batch the
// classifier is flushed when it implements Flusher.
func (a *Annotator) Annotate(ctx context.Context, transactions []models.Transaction) ([]models.AnnotatedTransaction, error) {
	annotated := make([]models.AnnotatedTransaction, 0, len(transactions))

	for i, tx := range transactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := a.classifier.Classify(ctx, tx)
		if err != nil {
			var classErr *parsererror.ClassificationError
			if !errors.As(err, &classErr) {
				err = &parsererror.ClassificationError{
					Transaction: Describe(tx),
					Provider:    a.provider,
					Err:         err,
				}
			}
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}

		annotated = append(annotated, models.Annotate(tx, result))
		a.logger.Info("Annotated transaction",
			logging.F(logging.FieldCounterparty, tx.Counterparty),
			logging.F(logging.FieldCategory, result.CategoryName),
			logging.F(logging.FieldReason, result.Reason))
	}

	if f, ok := a.classifier.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return nil, fmt.Errorf("failed to save classification cache: %w", err)
		}
	}

	a.logger.Info("Annotation complete", logging.F(logging.FieldCount, len(annotated)))
	return annotated, nil
}
