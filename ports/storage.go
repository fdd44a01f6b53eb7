package ports

import (
	"context"
	"io"
)

// FileStorage stores raw upload bytes. Paths returned by Store are opaque to callers.
type FileStorage interface {
	Store(ctx context.Context, data []byte, filename string) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
