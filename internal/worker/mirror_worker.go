package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/amqp"
	"tally/internal/core"
)

// RowMirror is the destination a MirrorWorker replays change events into.
// Satisfied by mirror.Client.
type RowMirror interface {
	Upsert(ctx context.Context, tx core.Transaction) error
	Delete(ctx context.Context, id string) error
}

// MirrorWorker applies transaction change events to a spreadsheet mirror.
// Returned errors cause the AMQP message to be requeued, so handlers must
// stay idempotent.
type MirrorWorker struct {
	mirror RowMirror
}

func NewMirrorWorker(m RowMirror) *MirrorWorker {
	return &MirrorWorker{mirror: m}
}

// HandleEvent processes a single change event from the queue.
func (w *MirrorWorker) HandleEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	slog.InfoContext(ctx, "Processing change event",
		"action", event.Action,
		"id", event.Transaction.ID)

	switch event.Action {
	case amqp.ActionCreated, amqp.ActionUpdated:
		if err := w.mirror.Upsert(ctx, event.Transaction); err != nil {
			return fmt.Errorf("mirror upsert %s: %w", event.Transaction.ID, err)
		}
	case amqp.ActionDeleted:
		if err := w.mirror.Delete(ctx, event.Transaction.ID); err != nil {
			return fmt.Errorf("mirror delete %s: %w", event.Transaction.ID, err)
		}
	default:
		// Unknown actions are dropped rather than requeued forever.
		slog.WarnContext(ctx, "Unknown event action, skipping", "action", event.Action)
	}
	return nil
}
