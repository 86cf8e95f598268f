// Package store persists classifier answers so that repeated counterparties
// are not sent to the classifier again.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/validation"

	"gopkg.in/yaml.v3"
)

// ClassificationStore loads and saves the counterparty -> classification cache
// as a YAML mapping.
type ClassificationStore struct {
	File   string
	logger logging.Logger
}

// NewClassificationStore creates a store backed by file.
func NewClassificationStore(file string, logger logging.Logger) *ClassificationStore {
	return &ClassificationStore{
		File:   file,
		logger: logging.OrDefault(logger),
	}
}

// Key normalizes a counterparty into a cache key.
func Key(counterparty string) string {
	return strings.Join(strings.Fields(counterparty), " ")
}

// LoadClassifications reads the cache. A missing file yields an empty map.
func (s *ClassificationStore) LoadClassifications() (map[string]models.Classification, error) {
	mappings := map[string]models.Classification{}
	if s.File == "" {
		return mappings, nil
	}

	data, err := os.ReadFile(s.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Classification cache not found, starting empty",
				logging.F(logging.FieldFile, s.File))
			return mappings, nil
		}
		return nil, fmt.Errorf("error reading classification cache: %w", err)
	}

	if info, err := os.Stat(s.File); err == nil {
		if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
			s.logger.Warn("Classification cache is readable by other users",
				logging.F(logging.FieldFile, s.File),
				logging.F("error", err.Error()))
		}
	}

	if err := yaml.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("error parsing classification cache %s: %w", s.File, err)
	}
	if mappings == nil {
		mappings = map[string]models.Classification{}
	}

	s.logger.Debug("Loaded classification cache",
		logging.F(logging.FieldFile, s.File),
		logging.F(logging.FieldCount, len(mappings)))
	return mappings, nil
}

// SaveClassifications writes the cache, creating its directory when needed.
func (s *ClassificationStore) SaveClassifications(mappings map[string]models.Classification) error {
	if s.File == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.File), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(mappings)
	if err != nil {
		return fmt.Errorf("error marshaling classification cache: %w", err)
	}

	if err := os.WriteFile(s.File, data, 0600); err != nil {
		return fmt.Errorf("error writing classification cache: %w", err)
	}

	s.logger.Debug("Saved classification cache",
		logging.F(logging.FieldFile, s.File),
		logging.F(logging.FieldCount, len(mappings)))
	return nil
}
