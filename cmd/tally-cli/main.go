package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tally/internal/cli"
	"tally/internal/client"
	"tally/internal/core"
	"tally/internal/ui"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: tally-cli [-server URL] <command> [args]

Commands:
  list      show transactions and the summary
  stats     show the summary only
  add       add a transaction (see tally-cli add -h)
  delete    delete a transaction by id
`)
	os.Exit(2)
}

func main() {
	cli.LoadEnvFile()

	server := flag.String("server", envOr("TALLY_SERVER", "http://localhost:5000"), "API server base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := client.NewStore(client.New(*server))

	var err error
	switch flag.Arg(0) {
	case "list":
		err = runList(ctx, store)
	case "stats":
		err = runStats(ctx, store)
	case "add":
		err = runAdd(ctx, store, flag.Args()[1:])
	case "delete":
		err = runDelete(ctx, store, flag.Args()[1:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runList(ctx context.Context, store *client.Store) error {
	if err := store.Refresh(ctx); err != nil {
		return err
	}
	ui.RenderState(os.Stdout, store.Snapshot())
	return nil
}

func runStats(ctx context.Context, store *client.Store) error {
	if err := store.Refresh(ctx); err != nil {
		return err
	}
	ui.RenderStats(os.Stdout, store.Snapshot().Stats)
	return nil
}

func runAdd(ctx context.Context, store *client.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "transaction title (required)")
	amount := fs.String("amount", "", "decimal amount, e.g. 12.50 (required)")
	category := fs.String("category", "", "category name (required)")
	txType := fs.String("type", "expense", "income or expense")
	date := fs.String("date", "", "date as YYYY-MM-DD (default today)")
	description := fs.String("description", "", "optional description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cents, err := core.ParseDecimalCents(*amount)
	if err != nil {
		return err
	}

	tx := core.Transaction{
		Title:       *title,
		Amount:      core.Money{Cents: cents},
		Category:    *category,
		Description: *description,
		Type:        core.TransactionType(*txType),
	}
	if *date != "" {
		d, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", *date)
		}
		tx.Date = d.UTC()
	}

	created, err := store.Add(ctx, tx)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s (%s %s)\n", created.Title, ui.FormatAmount(created.Amount, created.Type), created.ID)
	ui.RenderStats(os.Stdout, store.Snapshot().Stats)
	return nil
}

func runDelete(ctx context.Context, store *client.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tally-cli delete <id>")
	}
	if err := store.Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Expense deleted")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
