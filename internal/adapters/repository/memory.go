package repository

import (
	"container/list"
	"context"
	"sync"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/pkg/metrics"
)

// MemoryStore is a bounded in-memory Store. Documents are evicted in the
// order they were last stored.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	order    *list.List // front = most recent; values are match ids
	byID     map[string]*list.Element
	docs     map[string]matchfile.Document
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		capacity: DefaultCapacity,
		order:    list.New(),
		byID:     make(map[string]*list.Element),
		docs:     make(map[string]matchfile.Document),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, doc matchfile.Document) error {
	if doc.MatchID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.byID[doc.MatchID]; ok {
		s.order.MoveToFront(el)
	} else {
		s.byID[doc.MatchID] = s.order.PushFront(doc.MatchID)
	}
	s.docs[doc.MatchID] = doc

	for s.order.Len() > s.capacity {
		oldest := s.order.Back()
		id, _ := oldest.Value.(string)
		s.order.Remove(oldest)
		delete(s.byID, id)
		delete(s.docs, id)
	}
	metrics.UpdateStoredTimelines(s.order.Len())
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, matchID string) (matchfile.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[matchID]
	if !ok {
		return matchfile.Document{}, ErrNotFound
	}
	return doc, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, min(limit, s.order.Len()))
	for el := s.order.Front(); el != nil && len(out) < limit; el = el.Next() {
		id, _ := el.Value.(string)
		out = append(out, summarize(s.docs[id]))
	}
	return out, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Len()
}
