package categorizer

import "fjacquet/bill-csv/internal/models"

// ClassificationStoreInterface defines the persistence used by CachingClassifier.
type ClassificationStoreInterface interface {
	LoadClassifications() (map[string]models.Classification, error)
	SaveClassifications(mappings map[string]models.Classification) error
}
