package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"
)

var ErrNotFound = errors.New("storage: object not found")

// Store keeps uploaded attachments addressed by generated keys.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewKey builds "<unix millis>-<random>.<ext>" from the uploaded file name,
// keeping its extension.
func NewKey(originalName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return fmt.Sprintf("%d-%d%s", now.UnixMilli(), rand.Int64N(1e9), ext)
}

// ValidKey rejects anything that could escape the upload root.
func ValidKey(key string) bool {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return false
	}
	return filepath.Clean(key) == key
}

// Batch tracks keys written during one request so they can be removed if
// the request fails afterwards.
type Batch struct {
	store Store
	keys  []string
}

func NewBatch(store Store) *Batch {
	return &Batch{store: store}
}

func (b *Batch) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := b.store.Save(ctx, key, r, size, contentType); err != nil {
		return err
	}
	b.keys = append(b.keys, key)
	return nil
}

func (b *Batch) Keys() []string {
	return b.keys
}

// Rollback deletes every saved key, returning the first failure.
func (b *Batch) Rollback(ctx context.Context) error {
	var first error
	for _, k := range b.keys {
		if err := b.store.Delete(ctx, k); err != nil && first == nil {
			first = err
		}
	}
	b.keys = nil
	return first
}
