package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docrepo-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using a single local directory.
type Store struct {
	baseDir string
}

// New creates a local object store rooted at baseDir, creating it if needed.
func New(baseDir string) (object.ObjectStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir upload dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the reader to disk under a freshly generated uuid-based name.
func (s *Store) Save(ctx context.Context, ext string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	storedName := uuid.NewString()
	if ext != "" {
		storedName += "." + ext
	}

	fullPath := filepath.Join(s.baseDir, storedName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		// Leave no partial file behind.
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("write body: %w", err)
	}
	return storedName, size, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fullPath, err := s.resolve(storedName)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, object.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Remove deletes a stored object.
func (s *Store) Remove(ctx context.Context, storedName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := s.resolve(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return object.ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Store) resolve(storedName string) (string, error) {
	clean := filepath.Clean(storedName)
	if clean == "" || clean == "." || strings.Contains(clean, "/") ||
		strings.Contains(clean, "\\") || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid stored name")
	}
	return filepath.Join(s.baseDir, clean), nil
}
