// Package storage keeps uploaded file bytes in an external object store.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredObject describes an object after a successful Store.
type StoredObject struct {
	Key  string
	URL  string
	Size int64
}

// BlobStore is the object store contract the document service depends on.
type BlobStore interface {
	// Store uploads body under folder and returns its key and public URL.
	// Failures wrap model.ErrUploadFailed.
	Store(ctx context.Context, body []byte, filename, folder string) (*StoredObject, error)
	// Fetch returns the object's bytes. Failures wrap model.ErrFetchFailed.
	Fetch(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object and reports whether the store confirmed it.
	Delete(ctx context.Context, key string) bool
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename keeps the base name and replaces anything outside [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_.")
	if base == "" {
		return "file"
	}
	return base
}

// ObjectKey builds a unique key of the form <folder>/<unix>_<uuid>_<filename>.
func ObjectKey(folder, filename string, now time.Time) string {
	folder = strings.Trim(folder, "/")
	name := fmt.Sprintf("%d_%s_%s", now.Unix(), uuid.New(), SanitizeFilename(filename))
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// ContentType returns the MIME type served for a stored file.
func ContentType(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}
