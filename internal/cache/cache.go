// Package cache writes the fetched series to a local JSON artifact for
// inspection and debugging. Nothing downstream reads it back.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rhodlsync/internal/model"
)

// PersistError reports a failed local artifact write.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Write serializes the series to path as an indented JSON array of
// {date, value} records, creating parent directories and overwriting any
// prior artifact.
func Write(path string, s model.Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}

// Read loads a previously written artifact. Diagnostic use only.
func Read(path string) (model.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s model.Series
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}
