package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// writeJSON stores v at path as indented JSON, creating parent directories.
// what names the document in error messages.
func writeJSON(path, what string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", what, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s %s: %w", what, path, err)
	}
	return nil
}

// readJSON decodes the file at path into v. A missing file is not an error:
// found is false and v keeps whatever defaults the caller put there.
func readJSON(path, what string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s %s: %w", what, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to parse %s %s: %w", what, path, err)
	}
	return true, nil
}
