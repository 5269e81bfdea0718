// Package store persists render records.
//
// A [Store] keeps records by name in a document collection next to the
// data they describe. Records are stored as they are: compressed payloads
// stay compressed, and callers decompress with [record.Decompressed] when
// they need the text.
//
// Implementations:
//   - [Memory]: in-process map for tests and local serving
//   - [FileStore]: one JSON file per record, for the CLI
//   - [Mongo]: a MongoDB collection for shared deployments
//
// Missing records are reported as NOT_FOUND errors from pkg/errors.
package store

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/record"
)

// Store is the interface for record storage backends.
type Store interface {
	// Put inserts or replaces the record with the same name and returns
	// its stable ID. Replacing keeps the original ID.
	Put(ctx context.Context, rec *record.Record) (string, error)

	// Get returns the record named name.
	Get(ctx context.Context, name string) (*record.Record, error)

	// List returns the records carrying tag, sorted by name.
	// An empty tag lists everything.
	List(ctx context.Context, tag string) ([]record.Record, error)

	// Delete removes the record named name.
	Delete(ctx context.Context, name string) error

	// Close releases the backend.
	Close() error
}

// NewID returns a fresh record ID.
func NewID() string {
	return uuid.NewString()
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeNotFound, "record %q not found", name)
}

func validate(rec *record.Record) error {
	if rec == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "record must not be nil")
	}
	if rec.SVG == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "record %q has no svg", rec.Name)
	}
	return errors.ValidateRecordName(rec.Name)
}

func hasTag(rec record.Record, tag string) bool {
	return tag == "" || slices.Contains(rec.Tags, tag)
}
