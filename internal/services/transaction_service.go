// Package services glues the transaction store to the change-event
// publisher: persist first, notify best-effort.
package services

import (
	"context"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/store"
)

// TransactionService implements store.TransactionStore by delegating to the
// underlying backend and publishing a change event after each successful
// write. A publish failure never fails the request: the write already
// happened, the event is a best-effort notification.
type TransactionService struct {
	store     store.TransactionStore
	publisher store.EventPublisher
}

var _ store.TransactionStore = (*TransactionService)(nil)

// NewTransactionService wraps the backend. publisher may be nil, in which
// case events are skipped.
func NewTransactionService(s store.TransactionStore, publisher store.EventPublisher) *TransactionService {
	return &TransactionService{store: s, publisher: publisher}
}

func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	created, err := s.store.Create(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.publish(ctx, amqp.ActionCreated, created)
	return created, nil
}

func (s *TransactionService) Update(ctx context.Context, id string, tx core.Transaction) (core.Transaction, error) {
	updated, err := s.store.Update(ctx, id, tx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.publish(ctx, amqp.ActionUpdated, updated)
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	// Fetch before deleting so the event can carry the full record.
	tx, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.ActionDeleted, tx)
	return nil
}

func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.List(ctx)
}

func (s *TransactionService) Get(ctx context.Context, id string) (core.Transaction, error) {
	return s.store.Get(ctx, id)
}

func (s *TransactionService) Stats(ctx context.Context) (core.Stats, error) {
	return s.store.Stats(ctx)
}

func (s *TransactionService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *TransactionService) publish(ctx context.Context, action string, tx core.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, action, tx); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"error", err,
			"action", action,
			"id", tx.ID)
	}
}
