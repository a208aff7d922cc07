package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another process holds the catalog lock.
var ErrLocked = errors.New("catalog is locked by another process")

// Load reads and decodes the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &cat, nil
}

// Encode renders the catalog with two-space indentation and a trailing newline.
func Encode(cat *Catalog) ([]byte, error) {
	compact, err := cat.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indent catalog: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Save writes the catalog to path atomically.
func Save(path string, cat *Catalog) error {
	data, err := Encode(cat)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Lock takes the advisory lock guarding in-place rewrites of the catalog at
// path. The returned function releases it.
func Lock(path string) (func() error, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}
	return func() error {
		if err := lock.Unlock(); err != nil {
			return fmt.Errorf("release catalog lock: %w", err)
		}
		_ = os.Remove(lock.Path())
		return nil
	}, nil
}
