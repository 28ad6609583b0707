// Package docstore defines the document-store collaborator: a schemaless
// per-record store with flat field/value documents grouped into named
// collections, supporting CRUD and equality-filtered queries. Stores are
// constructed explicitly and injected, so tests can substitute the
// in-memory implementation.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get and Update when no document with the
// given id exists in the collection.
var ErrNotFound = errors.New("docstore: document not found")

// Filter is an equality constraint on a flat document field.
type Filter struct {
	Field string
	Value any
}

// Document is a persisted record: an opaque id plus flat field/value pairs.
type Document struct {
	ID     string
	Fields map[string]any
}

// Store is the surface the application consumes from the document store.
//
// Set exists alongside Create because marker documents are keyed
// deterministically (e.g. "<userID>_initialized_flag") and must be written
// under a caller-chosen id; Set upserts. All other writes use Create,
// which assigns a fresh opaque id.
type Store interface {
	// Create stores a new document with a store-assigned id and returns it.
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)

	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Set writes a document under a caller-chosen id, replacing any
	// existing document with that id.
	Set(ctx context.Context, collection, id string, fields map[string]any) error

	// Update merges the given fields into an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete removes the document with the given id. Deleting a missing
	// document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Query returns all documents in the collection matching every filter.
	// Results are ordered by creation time (store-assigned, deterministic).
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
}

// matches reports whether a document satisfies every equality filter.
func matches(fields map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if fields[f.Field] != f.Value {
			return false
		}
	}
	return true
}
