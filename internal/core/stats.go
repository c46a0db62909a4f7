package core

import "sort"

// CategoryStat is the aggregate for one distinct category value, across
// income and expense records combined.
type CategoryStat struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
	Count    int64  `json:"count"`
}

// Stats is the derived snapshot over the current transaction set. It is
// computed on demand and never stored.
type Stats struct {
	TotalIncome   Money          `json:"totalIncome"`
	TotalExpenses Money          `json:"totalExpenses"`
	Balance       Money          `json:"balance"`
	CategoryStats []CategoryStat `json:"categoryStats"`
}

// EmptyStats returns the all-zero snapshot with an empty (non-nil) category
// list, so it marshals as [] rather than null.
func EmptyStats() Stats {
	return Stats{CategoryStats: []CategoryStat{}}
}

// Summarize runs the aggregation pipeline over a record slice: sum of
// income amounts, sum of expense amounts, balance, and per-category
// sums with counts sorted by total descending. Ties order by category
// name so the result is deterministic.
func Summarize(list []Transaction) Stats {
	stats := EmptyStats()
	byCategory := make(map[string]*CategoryStat)

	for _, tx := range list {
		switch tx.Type {
		case Income:
			stats.TotalIncome = stats.TotalIncome.Add(tx.Amount)
		case Expense:
			stats.TotalExpenses = stats.TotalExpenses.Add(tx.Amount)
		}
		cs, ok := byCategory[tx.Category]
		if !ok {
			cs = &CategoryStat{Category: tx.Category}
			byCategory[tx.Category] = cs
		}
		cs.Total = cs.Total.Add(tx.Amount)
		cs.Count++
	}

	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpenses)
	for _, cs := range byCategory {
		stats.CategoryStats = append(stats.CategoryStats, *cs)
	}
	sort.Slice(stats.CategoryStats, func(i, j int) bool {
		a, b := stats.CategoryStats[i], stats.CategoryStats[j]
		if a.Total.Cents != b.Total.Cents {
			return a.Total.Cents > b.Total.Cents
		}
		return a.Category < b.Category
	})
	return stats
}
