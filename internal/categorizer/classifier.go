// Package categorizer assigns each transaction one category of the fixed label
// set, either through a local Ollama model or the Gemini API, and annotates
// transaction batches with the result.
package categorizer

import (
	"context"
	"fmt"

	"fjacquet/bill-csv/internal/models"
)

// ProviderCache names answers served from the classification cache in logs.
const ProviderCache = "cache"

// Classifier defines the interface for classification services.
// Implementations must return a category id from models.CategoryLabels and
// take the category name from that table.
type Classifier interface {
	Classify(ctx context.Context, tx models.Transaction) (models.Classification, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, tx models.Transaction) (models.Classification, error)

// Classify calls f.
func (f ClassifierFunc) Classify(ctx context.Context, tx models.Transaction) (models.Classification, error) {
	return f(ctx, tx)
}

// Flusher is implemented by classifiers that buffer state to persist after a
// successful batch.
type Flusher interface {
	Flush() error
}

// Describe identifies a transaction in errors and logs.
func Describe(tx models.Transaction) string {
	return fmt.Sprintf("%s %s %s", tx.TransactionTime, tx.Counterparty, tx.Amount)
}
