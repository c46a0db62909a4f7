package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"tally/internal/core"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped
		{10, 30 * time.Second}, // capped
		{63, 30 * time.Second}, // shift overflow stays capped
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := exponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"refused", errors.New("dial tcp: connection refused"), true},
		{"closed", errors.New("connection closed by server"), true},
		{"delivery channel", errors.New("message channel closed"), true},
		{"eof", errors.New("unexpected EOF"), true},
		{"validation", errors.New("title is required"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestTransactionEventRoundTrip(t *testing.T) {
	tx := core.Transaction{
		ID:       "abc-123",
		Title:    "Coffee",
		Amount:   core.Money{Cents: 450},
		Category: "Food",
		Type:     core.Expense,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	event := NewTransactionEvent(ActionCreated, tx)
	if event.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := TransactionEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Action != ActionCreated || got.Transaction.ID != "abc-123" || got.Transaction.Amount.Cents != 450 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := TransactionEventFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}
