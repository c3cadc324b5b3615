// Package storage stores uploaded files (menu images) on a pluggable disk.
//
// Two drivers are available:
//   - "local": local filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once and pass the disk to whoever needs it:
//
//	disk, err := storage.Open(ctx)
//	key := storage.NewKey("menu", ".png")
//	err = disk.Put(ctx, key, file, "image/png")
//	url := disk.URL(key)
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPath is returned for keys that would escape the disk root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes r to key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error

	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the object. Returns nil if it did not exist.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string

	// Name is the driver name, "local" or "s3".
	Name() string
}

// NewKey returns a collision-free object key such as "menu/<uuid>.png".
func NewKey(dir, ext string) string {
	return path.Join(dir, uuid.NewString()+strings.ToLower(ext))
}

// cleanKey normalises key and rejects traversal outside the root.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.TrimSpace(key))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." || strings.HasPrefix(k, "..") {
		return "", ErrInvalidPath
	}
	return k, nil
}
