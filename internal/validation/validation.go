// Package validation checks file system inputs given on the command line.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
)

// IsValidOutputPath checks that path can be written: it is not a directory
// and its parent directory exists.
func IsValidOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", path)
	}
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// IsValidFilePermissions checks that a file holding financial data is not
// readable or writable by other users.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
