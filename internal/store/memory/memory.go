// Package memory is the in-process TransactionStore used for tests and for
// running without a database (DATA_BACKEND=memory).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/store"
)

type Store struct {
	mu    sync.Mutex
	items map[string]core.Transaction
}

func New() *Store {
	return &Store{items: make(map[string]core.Transaction)}
}

func (s *Store) Create(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	now := time.Now().UTC()
	tx = tx.WithDefaults(now)
	tx.ID = uuid.NewString()
	tx.CreatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[tx.ID] = tx
	return tx, nil
}

func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.items))
	for _, tx := range s.items {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.items[id]
	if !ok {
		return core.Transaction{}, store.ErrNotFound
	}
	return tx, nil
}

func (s *Store) Update(_ context.Context, id string, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.items[id]
	if !ok {
		return core.Transaction{}, store.ErrNotFound
	}
	// Full replace of mutable fields; id and createdAt stay.
	tx = tx.WithDefaults(time.Now().UTC())
	tx.ID = prev.ID
	tx.CreatedAt = prev.CreatedAt
	s.items[id] = tx
	return tx, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Store) Stats(ctx context.Context) (core.Stats, error) {
	list, err := s.List(ctx)
	if err != nil {
		return core.Stats{}, err
	}
	return core.Summarize(list), nil
}

func (s *Store) Ping(context.Context) error { return nil }
