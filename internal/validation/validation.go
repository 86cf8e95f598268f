// Package validation checks user-supplied command arguments before any work starts.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/bill-csv/internal/parsererror"
)

// SupportedReportFormats lists the values accepted by IsValidReportFormat.
var SupportedReportFormats = []string{"markdown", "md", "json"}

// IsValidInputFile checks that path names an existing regular file.
// A missing file is reported as *parsererror.MissingFileError.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.MissingFileError{Path: path}
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	for _, f := range SupportedReportFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported report format: %s. Supported formats are %s",
		format, strings.Join(SupportedReportFormats, ", "))
}

// IsValidFilePermissions checks that a file holding private financial data is
// not accessible to other users.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
