package blob

import "context"

// Storage reads and writes whole objects by key.
type Storage interface {
	// Read returns the object bytes or an error wrapping ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write replaces the object atomically from the reader's point of view.
	Write(ctx context.Context, key string, data []byte) error
}
