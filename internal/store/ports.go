// Package store defines the persistence port the HTTP layer and the
// service layer talk to, plus the shared error taxonomy.
package store

import (
	"context"
	"errors"

	"tally/internal/core"
)

// ErrNotFound is returned when an id matches no stored transaction.
var ErrNotFound = errors.New("transaction not found")

// TransactionStore is the port every persistence backend implements.
//
// Create assigns the id and createdAt timestamp and returns the full
// persisted record. Update is a full replace of the mutable fields: what
// is absent in the incoming record becomes absent in the stored one.
// List returns records ordered by date descending.
type TransactionStore interface {
	Create(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	List(ctx context.Context) ([]core.Transaction, error)
	Get(ctx context.Context, id string) (core.Transaction, error)
	Update(ctx context.Context, id string, tx core.Transaction) (core.Transaction, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (core.Stats, error)

	// Ping reports whether the backing store is reachable. The server
	// stays up for health checks even when it is not.
	Ping(ctx context.Context) error
}

// EventPublisher is the outbound port for change notifications. Implemented
// by the AMQP client; optional at runtime.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, action string, tx core.Transaction) error
}
