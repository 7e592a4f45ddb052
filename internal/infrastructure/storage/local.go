// Package storage persists uploaded files on the local filesystem. Stored
// names are server-generated and collision-resistant so concurrent uploads
// of identically named files never clobber each other.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

var ErrFileTooLarge = errors.New("file exceeds maximum upload size")

// LocalStore writes files under a single base directory and hands out paths
// relative to it.
type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore ensures the base directory exists. maxBytes <= 0 disables
// the size cap.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save streams r to disk under a generated name and returns the relative
// path and byte count.
func (s *LocalStore) Save(originalName string, r io.Reader) (string, int64, error) {
	name := GenerateFilename(originalName)
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create file: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}

	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return "", 0, fmt.Errorf("write file: %w", err)
	}

	return name, n, nil
}

// Remove deletes a previously stored file. A path that escapes the base
// directory is rejected.
func (s *LocalStore) Remove(path string) error {
	clean := filepath.Clean(path)
	if clean != filepath.Base(clean) {
		return fmt.Errorf("invalid stored path: %s", path)
	}
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// GenerateFilename builds a unique stored name from a nanosecond timestamp
// and a random UUID, keeping only the extension of the original name.
func GenerateFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
}
