package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNotFound is returned when an upload id is unknown or expired.
var ErrNotFound = errors.New("upload not found")

// Upload is a user-supplied file kept between render passes.
type Upload struct {
	ID        string
	Name      string
	Data      []byte
	CreatedAt time.Time
}

// Store caches uploaded files so later render passes can refer to them by id.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (*Upload, error)
	Get(ctx context.Context, id string) (*Upload, error)
	Purge(ctx context.Context, olderThan time.Time) (int, error)
	Close() error
}

// ContentID derives the upload id from the file bytes, so re-uploading the
// same file reuses its entry.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}
