package domain

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes one stored object returned by a listing page.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore is the storage collaborator used by the document renderer,
// the archive exporter and the deletion commands. Implementations page
// through listings and stream object bodies; callers must close the
// returned readers.
type ObjectStore interface {
	// List walks every object under prefix, fetching pages lazily, and
	// invokes fn per object. A non-nil error from fn stops the walk.
	List(ctx context.Context, prefix string, fn func(ObjectInfo) error) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	// URL returns a presigned download URL for the key, or "" when the
	// object does not exist.
	URL(ctx context.Context, key string) string
	Delete(ctx context.Context, key string) error
}

// DocumentKind identifies a candidate-level stored document.
type DocumentKind string

const (
	DocumentResume        DocumentKind = "resume"
	DocumentPersonalImage DocumentKind = "personal_image"
	DocumentIDCopy        DocumentKind = "national_id_copy"
	DocumentPassportCopy  DocumentKind = "passport_copy"
)

// Valid reports whether the kind names a known candidate document.
func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentResume, DocumentPersonalImage, DocumentIDCopy, DocumentPassportCopy:
		return true
	}
	return false
}
