package repository

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mututech/site/internal/config"
)

// ObjectStore is the bucket an ImageUploader writes to.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// ImageUploader validates images and stores them under collision-avoiding
// names. It implements ImageStore.
type ImageUploader struct {
	objects ObjectStore

	maxSize      int
	allowedTypes []string

	now func() time.Time
}

func NewImageUploader(objects ObjectStore, cfg config.ImagesConfig) *ImageUploader {
	return &ImageUploader{
		objects:      objects,
		maxSize:      cfg.MaxSizeBytes,
		allowedTypes: cfg.AllowedTypes,
		now:          time.Now,
	}
}

// UploadImage stores data and returns its public URL. Every failure is
// wrapped in ErrRemote.
func (u *ImageUploader) UploadImage(ctx context.Context, data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image %q", ErrRemote, name)
	}
	if u.maxSize > 0 && len(data) > u.maxSize {
		return "", fmt.Errorf("%w: image %q is %d bytes, limit is %d", ErrRemote, name, len(data), u.maxSize)
	}

	contentType := http.DetectContentType(data)
	if len(u.allowedTypes) > 0 && !slices.Contains(u.allowedTypes, contentType) {
		return "", fmt.Errorf("%w: image %q has type %s", ErrRemote, name, contentType)
	}

	if err := u.objects.EnsureBucket(ctx); err != nil {
		return "", err
	}

	key := ObjectKey(u.now(), name)
	publicURL, err := u.objects.Put(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}

	repoLogger.Info().Str("key", key).Str("url", publicURL).Msg("Image uploaded")
	return publicURL, nil
}

// ObjectKey prefixes the sanitized base name with the unix millisecond time.
func ObjectKey(now time.Time, name string) string {
	base := unsafeNameChars.ReplaceAllString(filepath.Base(strings.ReplaceAll(name, `\`, "/")), "")
	if base == "" || base == "." {
		base = "image"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + base
}

// PlaceholderURL is the stock image used when an upload fails.
func PlaceholderURL(now time.Time) string {
	return fmt.Sprintf("https://images.unsplash.com/photo-%d?w=800&h=600&fit=crop&auto=format", now.UnixMilli())
}

// UploadOrPlaceholder uploads an image when a store is configured and falls
// back to PlaceholderURL otherwise or on any error.
func UploadOrPlaceholder(ctx context.Context, images ImageStore, data []byte, name string, now time.Time) string {
	if images == nil {
		return PlaceholderURL(now)
	}

	publicURL, err := images.UploadImage(ctx, data, name)
	if err != nil {
		repoLogger.Warn().Err(err).Str("name", name).Msg("Image upload failed, using placeholder")
		return PlaceholderURL(now)
	}
	return publicURL
}
