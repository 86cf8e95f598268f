package common

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/bill-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.md")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0600))

	err := WriteFileAtomic(path, &logging.MockLogger{}, func(w io.Writer) error {
		if _, err := w.Write([]byte("partial")); err != nil {
			return err
		}
		return errors.New("render failed")
	})
	require.EqualError(t, err, "render failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteBytesAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "2025-04月报.md")

	require.NoError(t, WriteBytesAtomic(path, []byte("# 2025-04月报\n"), nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# 2025-04月报\n", string(content))
}
