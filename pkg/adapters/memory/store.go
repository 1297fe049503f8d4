// Package memory provides an in-memory ports.PageStore.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

// Store implements ports.PageStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.PageRecord
	mu   sync.RWMutex
}

var _ ports.PageStore = (*Store)(nil)

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.PageRecord),
	}
}

// Save persists a copy of the record.
func (s *Store) Save(ctx context.Context, record *domain.PageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = *record
	return nil
}

// Load returns a copy so callers cannot mutate the stored record.
func (s *Store) Load(ctx context.Context, pageID string) (*domain.PageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[pageID]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	return &record, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, pageID)
	return nil
}

// List returns the live page IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]string, 0, len(s.data))
	for id := range s.data {
		pages = append(pages, id)
	}
	sort.Strings(pages)
	return pages, nil
}
