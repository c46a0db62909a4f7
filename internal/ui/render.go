// Package ui renders the cached client state for the terminal: summary
// cards, the transaction table, and the category breakdown.
package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"tally/internal/client"
	"tally/internal/core"
)

// RenderState writes the full view: stats cards, then the transaction
// table or the empty placeholder.
func RenderState(w io.Writer, state client.State) {
	RenderStats(w, state.Stats)
	fmt.Fprintln(w)
	RenderTransactions(w, state.List)
}

// RenderStats prints the three summary cards and the per-category totals.
func RenderStats(w io.Writer, stats core.Stats) {
	fmt.Fprintf(w, "Total Income:   $%s\n", stats.TotalIncome.Decimal())
	fmt.Fprintf(w, "Total Expenses: $%s\n", stats.TotalExpenses.Decimal())
	fmt.Fprintf(w, "Balance:        $%s\n", stats.Balance.Decimal())

	if len(stats.CategoryStats) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "By category:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cs := range stats.CategoryStats {
		fmt.Fprintf(tw, "  %s\t$%s\t(%d)\n", cs.Category, cs.Total.Decimal(), cs.Count)
	}
	tw.Flush()
}

// RenderTransactions prints the table, or a placeholder when there is
// nothing to show.
func RenderTransactions(w io.Writer, list []core.Transaction) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No transactions found. Add your first transaction!")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTITLE\tCATEGORY\tAMOUNT\tTYPE\tID")
	for _, tx := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date.Format("Jan 2, 2006"),
			tx.Title,
			tx.Category,
			FormatAmount(tx.Amount, tx.Type),
			capitalize(string(tx.Type)),
			tx.ID)
	}
	tw.Flush()
}

// FormatAmount renders a signed dollar amount: "+$4.50" for income,
// "-$4.50" for expenses.
func FormatAmount(amount core.Money, txType core.TransactionType) string {
	symbol := "-"
	if txType == core.Income {
		symbol = "+"
	}
	return symbol + "$" + amount.Decimal()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
