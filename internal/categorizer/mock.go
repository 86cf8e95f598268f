package categorizer

import (
	"context"
	"errors"

	"fjacquet/bill-csv/internal/models"
)

// StubClassifier is a deterministic Classifier for tests.
// Answers are looked up by counterparty; unknown counterparties get Default.
type StubClassifier struct {
	ByCounterparty map[string]int
	Default        int
	FailOn         string
	Err            error

	Calls []models.Transaction
}

// Classify records the call and answers from the stub tables.
func (s *StubClassifier) Classify(_ context.Context, tx models.Transaction) (models.Classification, error) {
	s.Calls = append(s.Calls, tx)
	if s.FailOn != "" && tx.Counterparty == s.FailOn {
		if s.Err != nil {
			return models.Classification{}, s.Err
		}
		return models.Classification{}, errors.New("stub failure")
	}

	id, ok := s.ByCounterparty[tx.Counterparty]
	if !ok {
		id = s.Default
	}
	name, _ := models.CategoryLabel(id)
	return models.Classification{CategoryID: id, CategoryName: name, Reason: "stub"}, nil
}
