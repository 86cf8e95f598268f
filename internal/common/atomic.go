package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/bill-csv/internal/logging"
)

// WriteFileAtomic creates the parent directory of filePath when absent, lets
// write fill a temporary file in that directory and renames it over filePath
// once write and close have succeeded. On failure the temporary file is removed
// and any previous filePath is left untouched.
func WriteFileAtomic(filePath string, logger logging.Logger, write func(w io.Writer) error) (err error) {
	logger = logging.OrDefault(logger)

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				logger.WithError(rmErr).Warn("Failed to remove temporary file")
			}
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	if err = os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("error moving file into place: %w", err)
	}
	return nil
}

// WriteBytesAtomic writes data to filePath through WriteFileAtomic.
func WriteBytesAtomic(filePath string, data []byte, logger logging.Logger) error {
	return WriteFileAtomic(filePath, logger, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
