package store

import (
	"fjacquet/bill-csv/internal/models"
)

// MockClassificationStore is an in-memory ClassificationStore for tests.
type MockClassificationStore struct {
	Classifications map[string]models.Classification
	Saves           int

	LoadError error
	SaveError error
}

// LoadClassifications returns a copy of the stored classifications.
func (m *MockClassificationStore) LoadClassifications() (map[string]models.Classification, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	result := make(map[string]models.Classification, len(m.Classifications))
	for k, v := range m.Classifications {
		result[k] = v
	}
	return result, nil
}

// SaveClassifications replaces the stored classifications.
func (m *MockClassificationStore) SaveClassifications(mappings map[string]models.Classification) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Classifications = make(map[string]models.Classification, len(mappings))
	for k, v := range mappings {
		m.Classifications[k] = v
	}
	m.Saves++
	return nil
}
