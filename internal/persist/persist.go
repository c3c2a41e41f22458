// Package persist stores small whitelisted state slices as JSON blobs on
// disk, one file per key. Writes are atomic (tmp + rename) and
// last-writer-wins; no cross-process coordination is attempted.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no blob exists for a key.
var ErrNotFound = errors.New("persisted state not found")

// Store is the minimal persistence surface the state containers need.
type Store interface {
	Save(key string, v any) error
	Load(key string, v any) error
}

// File is a filesystem-backed Store rooted at basePath.
type File struct {
	basePath string
}

// NewFile constructs a file-backed store rooted at basePath.
func NewFile(basePath string) *File {
	return &File{basePath: basePath}
}

// Save writes v as an indented JSON blob under key.
func (f *File) Save(key string, v any) error {
	if f == nil {
		return errors.New("persist store not configured")
	}
	if key == "" {
		return errors.New("persist key required")
	}
	if err := os.MkdirAll(f.basePath, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

// Load reads the blob under key into v. A missing blob yields ErrNotFound.
func (f *File) Load(key string, v any) error {
	if f == nil {
		return errors.New("persist store not configured")
	}
	if key == "" {
		return errors.New("persist key required")
	}

	file, err := os.Open(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(v)
}

func (f *File) path(key string) string {
	return filepath.Join(f.basePath, key+".json")
}
