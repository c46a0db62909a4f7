package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	if stats.TotalIncome.Cents != 0 || stats.TotalExpenses.Cents != 0 || stats.Balance.Cents != 0 {
		t.Fatalf("expected all-zero stats, got %+v", stats)
	}
	if stats.CategoryStats == nil || len(stats.CategoryStats) != 0 {
		t.Fatalf("expected empty non-nil category stats, got %#v", stats.CategoryStats)
	}

	b, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"categoryStats":[]`) {
		t.Fatalf("empty stats should marshal categoryStats as [], got %s", b)
	}
}

func TestSummarizeTotalsAndBalance(t *testing.T) {
	list := []Transaction{
		{Title: "Salary", Amount: Money{Cents: 100000}, Category: "Salary", Type: Income},
		{Title: "Groceries", Amount: Money{Cents: 20000}, Category: "Food", Type: Expense},
	}
	stats := Summarize(list)

	if stats.TotalIncome.Cents != 100000 {
		t.Fatalf("totalIncome = %d, want 100000", stats.TotalIncome.Cents)
	}
	if stats.TotalExpenses.Cents != 20000 {
		t.Fatalf("totalExpenses = %d, want 20000", stats.TotalExpenses.Cents)
	}
	if stats.Balance.Cents != 80000 {
		t.Fatalf("balance = %d, want 80000", stats.Balance.Cents)
	}

	want := []CategoryStat{
		{Category: "Salary", Total: Money{Cents: 100000}, Count: 1},
		{Category: "Food", Total: Money{Cents: 20000}, Count: 1},
	}
	if len(stats.CategoryStats) != len(want) {
		t.Fatalf("categoryStats = %+v", stats.CategoryStats)
	}
	for i := range want {
		if stats.CategoryStats[i] != want[i] {
			t.Fatalf("categoryStats[%d] = %+v, want %+v", i, stats.CategoryStats[i], want[i])
		}
	}
}

func TestSummarizePartitionsAllRecords(t *testing.T) {
	list := []Transaction{
		{Amount: Money{Cents: 100}, Category: "Food", Type: Expense},
		{Amount: Money{Cents: 200}, Category: "Food", Type: Expense},
		{Amount: Money{Cents: 300}, Category: "Salary", Type: Income},
		{Amount: Money{Cents: 50}, Category: "Bills", Type: Expense},
	}
	stats := Summarize(list)

	var count int64
	for _, cs := range stats.CategoryStats {
		count += cs.Count
	}
	if count != int64(len(list)) {
		t.Fatalf("category counts sum to %d, want %d", count, len(list))
	}
	if stats.Balance.Cents != stats.TotalIncome.Cents-stats.TotalExpenses.Cents {
		t.Fatalf("balance invariant broken: %+v", stats)
	}

	// Sorted by total descending.
	for i := 1; i < len(stats.CategoryStats); i++ {
		if stats.CategoryStats[i].Total.Cents > stats.CategoryStats[i-1].Total.Cents {
			t.Fatalf("categoryStats not sorted by total desc: %+v", stats.CategoryStats)
		}
	}
}

func TestSummarizeMixedTypesShareCategory(t *testing.T) {
	// Category stats combine income and expense records.
	list := []Transaction{
		{Amount: Money{Cents: 1000}, Category: "Other", Type: Income},
		{Amount: Money{Cents: 400}, Category: "Other", Type: Expense},
	}
	stats := Summarize(list)
	if len(stats.CategoryStats) != 1 {
		t.Fatalf("expected one category, got %+v", stats.CategoryStats)
	}
	cs := stats.CategoryStats[0]
	if cs.Total.Cents != 1400 || cs.Count != 2 {
		t.Fatalf("combined category = %+v", cs)
	}
}
