package repository

import (
	"context"
	"fmt"
	"sync"

	"plantchat/internal/model"
)

// MemoryStore keeps documents in process, in insertion order.
// It applies the same filter semantics as PostgresStore.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

// Find returns documents matching every filter in q
func (s *MemoryStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for _, doc := range s.collections[collection] {
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		if matches(doc.Data, q) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// PutBatch inserts or replaces documents by ID
func (s *MemoryStore) PutBatch(ctx context.Context, collection string, docs []Document) (int, []string) {
	if err := checkCollection(collection); err != nil {
		return 0, []string{err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	success := 0
	var errs []string
	for _, doc := range docs {
		if doc.ID == "" {
			errs = append(errs, fmt.Sprintf("%s: document without id", collection))
			continue
		}
		s.put(collection, doc)
		success++
	}
	return success, errs
}

func (s *MemoryStore) put(collection string, doc Document) {
	existing := s.collections[collection]
	for i := range existing {
		if existing[i].ID == doc.ID {
			existing[i] = doc
			return
		}
	}
	s.collections[collection] = append(existing, doc)
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}

func matches(data model.JSONMap, q Query) bool {
	for _, eq := range q.Equals {
		v, ok := lookup(data, eq.Field)
		if !ok || textValue(v) != textValue(eq.Value) {
			return false
		}
	}
	for _, r := range q.Ranges {
		v, ok := lookup(data, r.Field)
		if !ok {
			return false
		}
		s, isString := v.(string)
		if !isString || s < r.Min || s > r.Max {
			return false
		}
	}
	return true
}

// lookup walks a dotted path to a scalar value
func lookup(data map[string]interface{}, field string) (interface{}, bool) {
	var current interface{} = data
	for _, part := range splitField(field) {
		m, ok := current.(map[string]interface{})
		if !ok {
			if jm, isJSONMap := current.(model.JSONMap); isJSONMap {
				m = jm
			} else {
				return nil, false
			}
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	switch current.(type) {
	case map[string]interface{}, []interface{}, nil:
		return nil, false
	}
	return current, true
}

var _ DocumentStore = (*MemoryStore)(nil)
