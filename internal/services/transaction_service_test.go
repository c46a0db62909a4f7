package services

import (
	"context"
	"errors"
	"testing"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/store/memory"
)

type recordingPublisher struct {
	events []string
	fail   bool
}

func (p *recordingPublisher) PublishTransactionEvent(_ context.Context, action string, tx core.Transaction) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, action+":"+tx.ID)
	return nil
}

func sample() core.Transaction {
	return core.Transaction{
		Title:    "Coffee",
		Amount:   core.Money{Cents: 450},
		Category: "Food",
		Type:     core.Expense,
	}
}

func TestWritesPublishEvents(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewTransactionService(memory.New(), pub)
	ctx := context.Background()

	created, err := svc.Create(ctx, sample())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, sample()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{
		amqp.ActionCreated + ":" + created.ID,
		amqp.ActionUpdated + ":" + created.ID,
		amqp.ActionDeleted + ":" + created.ID,
	}
	if len(pub.events) != len(want) {
		t.Fatalf("events = %v, want %v", pub.events, want)
	}
	for i := range want {
		if pub.events[i] != want[i] {
			t.Fatalf("events[%d] = %s, want %s", i, pub.events[i], want[i])
		}
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	svc := NewTransactionService(memory.New(), &recordingPublisher{fail: true})
	ctx := context.Background()

	created, err := svc.Create(ctx, sample())
	if err != nil {
		t.Fatalf("create should succeed despite publish failure: %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("record not persisted: %+v", list)
	}
}

func TestFailedWritePublishesNothing(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewTransactionService(memory.New(), pub)

	bad := sample()
	bad.Title = ""
	if _, err := svc.Create(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := svc.Delete(context.Background(), "missing"); err == nil {
		t.Fatalf("expected not found")
	}
	if len(pub.events) != 0 {
		t.Fatalf("events published for failed writes: %v", pub.events)
	}
}

func TestNilPublisher(t *testing.T) {
	svc := NewTransactionService(memory.New(), nil)
	if _, err := svc.Create(context.Background(), sample()); err != nil {
		t.Fatalf("create with nil publisher: %v", err)
	}
}
