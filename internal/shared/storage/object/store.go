package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a stored object does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for saving and retrieving uploaded binaries.
// Stored names are generated by the store and are collision-free.
type ObjectStore interface {
	Save(ctx context.Context, ext string, r io.Reader) (storedName string, sizeBytes int64, err error)
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	Remove(ctx context.Context, storedName string) error
}
