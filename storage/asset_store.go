// Package storage keeps uploaded images on local disk and hands out stable references.
package storage

import (
	"chat-live/domain/mimetypes"
	"chat-live/errors"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const AssetRoute = "/assets/"

// DiskAssetStore stores base64 or data URI images under dir.
// Images that are already references are kept untouched.
type DiskAssetStore struct {
	log     *slog.Logger
	dir     string
	maxSize int
}

func NewDiskAssetStore(log *slog.Logger, dir string, maxSize int) (*DiskAssetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("assets directory %s: %w", dir, err)
	}
	return &DiskAssetStore{log: log, dir: dir, maxSize: maxSize}, nil
}

func (d *DiskAssetStore) Dir() string { return d.dir }

// Resolve returns the reference to store in the message for the given image field.
func (d *DiskAssetStore) Resolve(ctx context.Context, image string) (string, error) {
	if image == "" || IsReference(image) {
		return image, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	payload := image
	if strings.HasPrefix(payload, "data:") {
		_, encoded, ok := strings.Cut(payload, ",")
		if !ok {
			return "", fmt.Errorf("%w: malformed data URI", errors.ErrUnsupportedAsset)
		}
		payload = encoded
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUnsupportedAsset, err)
	}
	if d.maxSize > 0 && len(data) > d.maxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", errors.ErrUnsupportedAsset, len(data), d.maxSize)
	}

	mime := mimetype.Detect(data)
	if _, ok := mimetypes.ImageType(mime.String()); !ok {
		return "", fmt.Errorf("%w: detected %s", errors.ErrUnsupportedAsset, mime.String())
	}

	name := uuid.NewString() + mime.Extension()
	if err = os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	d.log.Debug("Image stored", "name", name, "mime", mime.String(), "size", len(data))
	return AssetRoute + name, nil
}

// Discard deletes an asset previously stored by Resolve.
// References that do not point into this store are left alone.
func (d *DiskAssetStore) Discard(ref string) error {
	if !strings.HasPrefix(ref, AssetRoute) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(ref, AssetRoute))
	err := os.Remove(filepath.Join(d.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("discard image %s: %w", name, err)
	}
	d.log.Debug("Image discarded", "name", name)
	return nil
}

// IsReference reports whether image already points to a stored asset or a remote URL.
func IsReference(image string) bool {
	return strings.HasPrefix(image, AssetRoute) ||
		strings.HasPrefix(image, "http://") ||
		strings.HasPrefix(image, "https://")
}
