package client

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
)

// State is the cached view of the server's data: the transaction list and
// the aggregate summary.
type State struct {
	List  []core.Transaction
	Stats core.Stats
}

// EventType names a state transition.
type EventType string

const (
	EventListFetched  EventType = "listFetched"
	EventAdded        EventType = "added"
	EventDeleted      EventType = "deleted"
	EventStatsFetched EventType = "statsFetched"
)

// Event is a single state transition. Exactly one payload field is set,
// matching the Type.
type Event struct {
	Type        EventType
	List        []core.Transaction
	Transaction core.Transaction
	ID          string
	Stats       core.Stats
}

// API is the server surface the store depends on. Satisfied by Client.
type API interface {
	FetchTransactions(ctx context.Context) ([]core.Transaction, error)
	AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	FetchStats(ctx context.Context) (core.Stats, error)
}

// Store owns the cached state. All mutation flows through apply, so every
// transition is one of the named events.
type Store struct {
	mu    sync.RWMutex
	state State
	api   API
}

func NewStore(api API) *Store {
	return &Store{
		api: api,
		state: State{
			List:  []core.Transaction{},
			Stats: core.EmptyStats(),
		},
	}
}

func (s *Store) apply(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case EventListFetched:
		if ev.List == nil {
			ev.List = []core.Transaction{}
		}
		s.state.List = ev.List
	case EventAdded:
		s.state.List = append([]core.Transaction{ev.Transaction}, s.state.List...)
	case EventDeleted:
		kept := s.state.List[:0:0]
		for _, tx := range s.state.List {
			if tx.ID != ev.ID {
				kept = append(kept, tx)
			}
		}
		if kept == nil {
			kept = []core.Transaction{}
		}
		s.state.List = kept
	case EventStatsFetched:
		s.state.Stats = ev.Stats
	}
}

// Snapshot returns a copy of the current state. The list slice is copied
// so callers cannot mutate the cache.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]core.Transaction, len(s.state.List))
	copy(list, s.state.List)
	return State{List: list, Stats: s.state.Stats}
}

// Refresh fetches the list and stats concurrently and replaces both.
func (s *Store) Refresh(ctx context.Context) error {
	var (
		list  []core.Transaction
		stats core.Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.api.FetchTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.api.FetchStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.apply(Event{Type: EventListFetched, List: list})
	s.apply(Event{Type: EventStatsFetched, Stats: stats})
	return nil
}

// Add creates the transaction on the server, prepends it to the cached
// list, and refreshes the stats.
func (s *Store) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	created, err := s.api.AddTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.apply(Event{Type: EventAdded, Transaction: created})
	return created, s.refreshStats(ctx)
}

// Remove deletes the transaction on the server, drops it from the cached
// list, and refreshes the stats.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.apply(Event{Type: EventDeleted, ID: id})
	return s.refreshStats(ctx)
}

func (s *Store) refreshStats(ctx context.Context) error {
	stats, err := s.api.FetchStats(ctx)
	if err != nil {
		return err
	}
	s.apply(Event{Type: EventStatsFetched, Stats: stats})
	return nil
}
