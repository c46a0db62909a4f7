package core

import (
	"strings"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		Title:    "Coffee",
		Amount:   Money{Cents: 450},
		Category: "Food",
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Type:     Expense,
	}
}

func TestTransactionValidate(t *testing.T) {
	good := validTransaction()
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"empty title", func(tx *Transaction) { tx.Title = "" }, ErrEmptyTitle},
		{"blank title", func(tx *Transaction) { tx.Title = "   " }, ErrEmptyTitle},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"empty category", func(tx *Transaction) { tx.Category = "" }, ErrEmptyCategory},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"missing type", func(tx *Transaction) { tx.Type = "" }, ErrInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			if err := tx.Validate(); err != tc.want {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	long := validTransaction()
	long.Title = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Fatalf("expected error for overlong title")
	}
}

func TestTransactionTypeValid(t *testing.T) {
	for _, tt := range []TransactionType{Income, Expense} {
		if !tt.Valid() {
			t.Fatalf("%q should be valid", tt)
		}
	}
	for _, tt := range []TransactionType{"", "INCOME", "transfer"} {
		if tt.Valid() {
			t.Fatalf("%q should be invalid", tt)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tx := validTransaction()
	tx.Date = time.Time{}
	if got := tx.WithDefaults(now); !got.Date.Equal(now) {
		t.Fatalf("zero date not defaulted: %v", got.Date)
	}

	explicit := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	tx.Date = explicit
	if got := tx.WithDefaults(now); !got.Date.Equal(explicit) {
		t.Fatalf("explicit date overwritten: %v", got.Date)
	}
}
