package worker

import (
	"context"
	"errors"
	"testing"

	"tally/internal/amqp"
	"tally/internal/core"
)

type fakeMirror struct {
	upserts []core.Transaction
	deletes []string
	err     error
}

func (f *fakeMirror) Upsert(ctx context.Context, tx core.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, tx)
	return nil
}

func (f *fakeMirror) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func TestHandleEventRoutesActions(t *testing.T) {
	m := &fakeMirror{}
	w := NewMirrorWorker(m)
	ctx := context.Background()

	tx := core.Transaction{ID: "t1", Title: "coffee", Type: core.Expense}

	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(amqp.ActionCreated, tx)); err != nil {
		t.Fatalf("created: %v", err)
	}
	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(amqp.ActionUpdated, tx)); err != nil {
		t.Fatalf("updated: %v", err)
	}
	if err := w.HandleEvent(ctx, amqp.NewTransactionEvent(amqp.ActionDeleted, tx)); err != nil {
		t.Fatalf("deleted: %v", err)
	}

	if len(m.upserts) != 2 {
		t.Fatalf("upserts=%d, want 2", len(m.upserts))
	}
	if len(m.deletes) != 1 || m.deletes[0] != "t1" {
		t.Fatalf("deletes=%v", m.deletes)
	}
}

func TestHandleEventUnknownActionDropped(t *testing.T) {
	m := &fakeMirror{}
	w := NewMirrorWorker(m)

	ev := amqp.NewTransactionEvent("archived", core.Transaction{ID: "t2"})
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("unknown action must not error: %v", err)
	}
	if len(m.upserts) != 0 || len(m.deletes) != 0 {
		t.Fatal("unknown action must not touch the mirror")
	}
}

func TestHandleEventPropagatesMirrorError(t *testing.T) {
	m := &fakeMirror{err: errors.New("sheets unavailable")}
	w := NewMirrorWorker(m)

	ev := amqp.NewTransactionEvent(amqp.ActionCreated, core.Transaction{ID: "t3"})
	if err := w.HandleEvent(context.Background(), ev); err == nil {
		t.Fatal("expected error so the message is requeued")
	}
}
