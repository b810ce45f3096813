// Package storage keeps uploaded bytes under a sharded key layout, either on
// local disk or in an S3 bucket.
package storage

import (
	"context"
	"errors"
	"io"

	"serwer-tabel/internal/models"
)

var (
	ErrNotFound   = errors.New("file not found in storage")
	ErrInvalidKey = errors.New("invalid storage key")
)

// FileStore persists uploaded tables. Implementations are safe for
// concurrent use but do not serialise writers of the same key.
type FileStore interface {
	// Save writes data under the sharded key for (owner, visibility,
	// filename) and returns that key.
	Save(ctx context.Context, owner string, visibility models.Visibility, filename string, data io.Reader) (string, error)
	// Open fails with ErrNotFound when nothing is stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete is a no-op when nothing is stored under key.
	Delete(ctx context.Context, key string) error
}
