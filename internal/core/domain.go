package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	// TransactionType is one of exactly two values: income or expense.
	TransactionType string

	// Money holds an amount in cents. It marshals to and from a JSON
	// decimal number, so the wire contract stays "amount": 4.50 while
	// all arithmetic happens on integers.
	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record. ID and CreatedAt
	// are assigned by the store on creation and never change afterwards.
	Transaction struct {
		ID          string          `json:"id"`
		Title       string          `json:"title"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description,omitempty"`
		Date        time.Time       `json:"date"`
		Type        TransactionType `json:"type"`
		CreatedAt   time.Time       `json:"createdAt"`
	}
)

var (
	ErrEmptyTitle    = errors.New("title is required")
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrEmptyCategory = errors.New("category is required")
	ErrInvalidType   = errors.New("type must be 'income' or 'expense'")
)

// Valid reports whether t is one of the two allowed transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the required-field and enum constraints. The category is
// intentionally not checked against a fixed list: only the client form
// constrains it, the API accepts any non-empty value.
func (tx Transaction) Validate() error {
	if strings.TrimSpace(tx.Title) == "" {
		return ErrEmptyTitle
	}
	if len(tx.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	if len(tx.Description) > 500 {
		return errors.New("description too long (max 500 characters)")
	}
	return nil
}

// WithDefaults returns a copy with the Date defaulted to now when unset.
// Create and Update share this rule: a record written without a date gets
// the write time, it never inherits a previous value.
func (tx Transaction) WithDefaults(now time.Time) Transaction {
	if tx.Date.IsZero() {
		tx.Date = now
	}
	return tx
}
