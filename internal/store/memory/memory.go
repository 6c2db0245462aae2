// Package memory holds the default session-scoped transaction store: a
// mutex-guarded slice that lives exactly as long as the process and is
// discarded entirely on logout.
package memory

import (
	"context"
	"sync"

	"financas/internal/core"
	"financas/internal/store"
)

type Store struct {
	mu         sync.Mutex
	categories []string
	items      []core.Transaction
	generation uint64
}

var _ store.Store = (*Store)(nil)

func New(categories []string) *Store {
	return &Store{categories: dedupe(categories)}
}

// Append validates against the category list and inserts at the head of the
// collection, newest first.
func (s *Store) Append(_ context.Context, t core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := t.Validate(s.categories); err != nil {
		return "", err
	}
	s.items = append([]core.Transaction{t}, s.items...)
	s.generation++
	return t.ID, nil
}

// Delete removes the transaction with the given ID.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.generation++
			return nil
		}
	}
	return store.ErrNotFound
}

// List returns a copy of the collection in insertion order, newest first.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Categories returns the configured category list.
func (s *Store) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// Reset discards all transactions. Called on logout.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.generation++
	return nil
}

// Generation reports the mutation counter for cache keying.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Seed appends demonstration records without category validation errors
// aborting the batch; invalid records are skipped.
func (s *Store) Seed(ctx context.Context, txs []core.Transaction) {
	for i := len(txs) - 1; i >= 0; i-- {
		_, _ = s.Append(ctx, txs[i])
	}
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
