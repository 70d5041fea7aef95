package storage

import (
	"context"
	"io"
	"time"
)

// Upload is one incoming file, opened lazily so nothing is read before the
// request has passed validation.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// SaveUpload stores u under a generated key and returns the key.
func (b *Batch) SaveUpload(ctx context.Context, u Upload, now time.Time) (string, error) {
	rc, err := u.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	key := NewKey(u.Name, now)
	if err := b.Save(ctx, key, rc, u.Size, u.ContentType); err != nil {
		return "", err
	}
	return key, nil
}
