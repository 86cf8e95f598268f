package categorizer

import (
	"context"
	"fmt"

	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/store"
)

// CachingClassifier answers from a counterparty cache before delegating to
// the wrapped classifier. New answers are persisted by Flush.
type CachingClassifier struct {
	next   Classifier
	store  ClassificationStoreInterface
	cache  map[string]models.Classification
	dirty  bool
	logger logging.Logger
}

// NewCachingClassifier loads the cache from s and wraps next.
func NewCachingClassifier(next Classifier, s ClassificationStoreInterface, logger logging.Logger) (*CachingClassifier, error) {
	cache, err := s.LoadClassifications()
	if err != nil {
		return nil, fmt.Errorf("failed to load classification cache: %w", err)
	}
	return &CachingClassifier{
		next:   next,
		store:  s,
		cache:  cache,
		logger: logging.OrDefault(logger),
	}, nil
}

// Classify returns the cached answer for the counterparty, if any.
func (c *CachingClassifier) Classify(ctx context.Context, tx models.Transaction) (models.Classification, error) {
	key := store.Key(tx.Counterparty)
	if key != "" {
		if hit, ok := c.cache[key]; ok {
			if name, valid := models.CategoryLabel(hit.CategoryID); valid {
				hit.CategoryName = name
				c.logger.Debug("Classification cache hit",
					logging.F(logging.FieldProvider, ProviderCache),
					logging.F(logging.FieldCounterparty, key),
					logging.F(logging.FieldCategory, name))
				return hit, nil
			}
		}
	}

	result, err := c.next.Classify(ctx, tx)
	if err != nil {
		return models.Classification{}, err
	}
	if key != "" {
		c.cache[key] = result
		c.dirty = true
	}
	return result, nil
}

// Flush saves the cache when new answers were added.
func (c *CachingClassifier) Flush() error {
	if !c.dirty {
		return nil
	}
	if err := c.store.SaveClassifications(c.cache); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
