// Package filestore implements the local file-backed JSON cache shared by the
// label store and the permissions store.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Read loads a JSON value from path. A missing file is not an error: the
// default value is returned instead, so callers always get a usable value on
// first run.
func Read[T any](path string, defaultValue T) (T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultValue, nil
	}
	if err != nil {
		return defaultValue, fmt.Errorf("failed to read cache file %s: %w", path, err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return defaultValue, fmt.Errorf("failed to parse cache file %s: %w", path, err)
	}
	return value, nil
}

// Write overwrites path with the pretty-printed JSON encoding of value
func Write[T any](path string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", path, err)
	}
	return nil
}
