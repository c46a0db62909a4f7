package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/store"
)

func sample(title string, cents int64, cat string, tt core.TransactionType) core.Transaction {
	return core.Transaction{
		Title:    title,
		Amount:   core.Money{Cents: cents},
		Category: cat,
		Type:     tt,
	}
}

func TestCreateAssignsIdentity(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, sample("Coffee", 450, "Food", core.Expense))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("id not assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("createdAt not assigned")
	}
	if created.Date.IsZero() {
		t.Fatalf("date not defaulted")
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Create(context.Background(), sample("", 450, "Food", core.Expense))
	if !errors.Is(err, core.ErrEmptyTitle) {
		t.Fatalf("got %v, want ErrEmptyTitle", err)
	}
}

func TestListOrdersByDateDescending(t *testing.T) {
	s := New()
	ctx := context.Background()

	old := sample("Old", 100, "Food", core.Expense)
	old.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := sample("Recent", 200, "Food", core.Expense)
	recent.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, err := s.Create(ctx, old); err != nil {
		t.Fatalf("create old: %v", err)
	}
	if _, err := s.Create(ctx, recent); err != nil {
		t.Fatalf("create recent: %v", err)
	}

	list, _ := s.List(ctx)
	if len(list) != 2 || list[0].Title != "Recent" || list[1].Title != "Old" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestUpdateReplacesAllMutableFields(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, _ := s.Create(ctx, core.Transaction{
		Title:       "Lunch",
		Amount:      core.Money{Cents: 1200},
		Category:    "Food",
		Description: "team lunch",
		Type:        core.Expense,
	})

	// Description omitted: it must become absent, not be preserved.
	updated, err := s.Update(ctx, created.ID, sample("Dinner", 2500, "Entertainment", core.Expense))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Dinner" || updated.Amount.Cents != 2500 || updated.Category != "Entertainment" {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if updated.Description != "" {
		t.Fatalf("description preserved, want absent: %q", updated.Description)
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
}

func TestUpdateMissingID(t *testing.T) {
	s := New()
	_, err := s.Update(context.Background(), "nope", sample("x", 100, "Food", core.Expense))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteThenRepeatIsNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, _ := s.Create(ctx, sample("Coffee", 450, "Food", core.Expense))
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Second delete: not found, collection unchanged.
	if err := s.Delete(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	list, _ := s.List(ctx)
	if len(list) != 0 {
		t.Fatalf("collection changed by failed delete: %+v", list)
	}
}

func TestStatsMatchesSummarize(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Create(ctx, sample("Salary", 100000, "Salary", core.Income))
	s.Create(ctx, sample("Groceries", 20000, "Food", core.Expense))

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Balance.Cents != 80000 {
		t.Fatalf("balance = %d, want 80000", stats.Balance.Cents)
	}
	if len(stats.CategoryStats) != 2 || stats.CategoryStats[0].Category != "Salary" {
		t.Fatalf("categoryStats = %+v", stats.CategoryStats)
	}
}
