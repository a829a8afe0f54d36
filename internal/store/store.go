// Package store persists uploaded datasets and resolves opaque dataset
// identifiers back to readable byte streams.
//
// Identifiers are generated uuid4 hex strings with no semantic meaning.
// Resolution is a strict equality match on the identifier via an explicit
// manifest (or object key), never a filename prefix scan, so two datasets
// can never shadow each other.
package store

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Dataset describes one stored dataset. FileName is the original upload
// name, kept as metadata only.
type Dataset struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Handle is a resolved dataset that can be re-opened for reading. The
// profiling engine re-opens the handle on every operation, so Open must be
// callable any number of times.
type Handle interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Store is the dataset storage contract. Implementations do not provide
// read/write isolation: a dataset overwritten mid-read may yield an
// inconsistent parse, which callers accept.
type Store interface {
	// Save writes the stream under a freshly generated identifier,
	// preserving the upload's file extension, and returns its metadata.
	Save(ctx context.Context, fileName string, r io.Reader) (Dataset, error)

	// Resolve maps an identifier to a readable handle. Unknown identifiers
	// return a *NotFoundError.
	Resolve(ctx context.Context, id string) (Handle, error)

	// List returns all stored datasets, oldest first.
	List(ctx context.Context) ([]Dataset, error)
}

// NotFoundError reports an identifier that does not resolve to any stored
// dataset.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset %q not found", e.ID)
}
