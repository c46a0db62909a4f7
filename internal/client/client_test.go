package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"tally/internal/core"
	tallyhttp "tally/internal/http"
	"tally/internal/store/memory"
)

func newAPIServer(t *testing.T) *Client {
	t.Helper()
	srv := tallyhttp.NewServer(":0", "5000", memory.New())
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func TestClientRoundTrip(t *testing.T) {
	c := newAPIServer(t)
	ctx := context.Background()

	created, err := c.AddTransaction(ctx, core.Transaction{
		Title:    "Groceries",
		Amount:   core.Money{Cents: 4550},
		Category: "Food",
		Type:     core.Expense,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Fatal("no id assigned")
	}

	list, err := c.FetchTransactions(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list=%+v", list)
	}

	stats, err := c.FetchStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalExpenses.Cents != 4550 {
		t.Fatalf("totalExpenses=%d", stats.TotalExpenses.Cents)
	}

	if err := c.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err = c.FetchTransactions(ctx)
	if err != nil {
		t.Fatalf("fetch after delete: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list=%+v, want empty", list)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	c := newAPIServer(t)
	ctx := context.Background()

	_, err := c.AddTransaction(ctx, core.Transaction{Title: "", Type: core.Expense})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err=%v, want *APIError", err)
	}
	if apiErr.StatusCode != 400 || apiErr.Message == "" {
		t.Fatalf("apiErr=%+v", apiErr)
	}

	err = c.DeleteTransaction(ctx, "missing")
	if !errors.As(err, &apiErr) {
		t.Fatalf("err=%v", err)
	}
	if apiErr.StatusCode != 404 || apiErr.Message != "Expense not found" {
		t.Fatalf("apiErr=%+v", apiErr)
	}
}
