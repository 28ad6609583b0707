package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"spendtrack/internal/uuid"
)

// MemoryStore is an in-process Store used by tests and memory-backed runs.
// Field values round-trip through JSON on write so both implementations
// hand back identical types (numbers always come back as float64).
type MemoryStore struct {
	mu   sync.Mutex
	seq  int
	docs map[string]map[string]memoryDoc // collection -> id -> doc
}

type memoryDoc struct {
	seq    int
	fields map[string]any
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]memoryDoc)}
}

// Create stores a new document under a fresh UUIDv7 id.
func (s *MemoryStore) Create(_ context.Context, collection string, fields map[string]any) (string, error) {
	copied, err := copyFields(fields)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.put(collection, id, copied)
	return id, nil
}

// Get returns the document with the given id, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	copied, err := copyFields(doc.fields)
	if err != nil {
		return nil, err
	}
	return &Document{ID: id, Fields: copied}, nil
}

// Set upserts a document under a caller-chosen id.
func (s *MemoryStore) Set(_ context.Context, collection, id string, fields map[string]any) error {
	copied, err := copyFields(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.docs[collection][id]; ok {
		// Replace contents, keep the original creation order.
		s.docs[collection][id] = memoryDoc{seq: existing.seq, fields: copied}
		return nil
	}
	s.put(collection, id, copied)
	return nil
}

// Update merges fields into an existing document.
func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	copied, err := copyFields(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range copied {
		doc.fields[k] = v
	}
	return nil
}

// Delete removes a document; deleting a missing document is a no-op.
func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs[collection], id)
	return nil
}

// Query returns matching documents in creation order.
func (s *MemoryStore) Query(_ context.Context, collection string, filters ...Filter) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type entry struct {
		seq int
		doc Document
	}
	var entries []entry
	for id, doc := range s.docs[collection] {
		if !matches(doc.fields, filters) {
			continue
		}
		copied, err := copyFields(doc.fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{seq: doc.seq, doc: Document{ID: id, Fields: copied}})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	var docs []Document
	for _, e := range entries {
		docs = append(docs, e.doc)
	}
	return docs, nil
}

// put stores a document under the next sequence number. Caller holds the lock.
func (s *MemoryStore) put(collection, id string, fields map[string]any) {
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]memoryDoc)
	}
	s.seq++
	s.docs[collection][id] = memoryDoc{seq: s.seq, fields: fields}
}

func copyFields(fields map[string]any) (map[string]any, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	copied := make(map[string]any)
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return copied, nil
}

var _ Store = (*MemoryStore)(nil)
