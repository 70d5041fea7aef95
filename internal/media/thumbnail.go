package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
)

const (
	thumbPrefix  = "thumbs/"
	thumbQuality = 75
	maxSource    = 32 << 20
	// MaxPixels bounds the decoded size of a source image.
	MaxPixels = 40_000_000
)

var ErrImageTooLarge = errors.New("image dimensions exceed limit")

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsImage reports whether name looks like a decodable image.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(path.Ext(name))]
}

// ThumbKey is the storage key of the webp thumbnail for key.
func ThumbKey(key string) string {
	return thumbPrefix + strings.TrimSuffix(key, path.Ext(key)) + ".webp"
}

type Thumbnailer struct {
	store storage.Store
	width int
	log   *slog.Logger
}

func NewThumbnailer(store storage.Store, width int, log *slog.Logger) *Thumbnailer {
	if width <= 0 {
		width = 320
	}
	if log == nil {
		log = slog.Default()
	}
	return &Thumbnailer{store: store, width: width, log: log}
}

// Generate writes a webp thumbnail no wider than the configured width.
func (t *Thumbnailer) Generate(ctx context.Context, key string) error {
	rc, err := t.store.Open(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, maxSource))
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return fmt.Errorf("decode %s: %dx%d: %w", key, cfg.Width, cfg.Height, ErrImageTooLarge)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, Resize(src, t.width), &webp.Options{Quality: thumbQuality}); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return t.store.Save(ctx, ThumbKey(key), &buf, int64(buf.Len()), "image/webp")
}

// GenerateAll runs Generate for every image key and only logs failures.
func (t *Thumbnailer) GenerateAll(ctx context.Context, keys []string) {
	for _, k := range keys {
		if !IsImage(k) {
			continue
		}
		if err := t.Generate(ctx, k); err != nil {
			t.log.Warn("thumbnail failed", slog.String("key", k), slog.String("error", err.Error()))
		}
	}
}

// Resize scales src down to width, keeping the aspect ratio. Smaller images
// are returned as-is.
func Resize(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() <= width {
		return src
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
