package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tally/internal/core"
	"tally/internal/store"
)

// SQLiteRepository implements store.TransactionStore on a local SQLite file.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ store.TransactionStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	now := time.Now().UTC()
	tx = tx.WithDefaults(now)
	tx.ID = uuid.NewString()
	tx.CreatedAt = now

	if err := r.queries.InsertTransaction(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"title", tx.Title,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category,
		"type", tx.Type)

	return tx, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]core.Transaction, error) {
	list, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return list, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Transaction, error) {
	tx, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx = tx.WithDefaults(time.Now().UTC())

	affected, err := r.queries.UpdateTransaction(ctx, id, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if affected == 0 {
		return core.Transaction{}, store.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id, "title", tx.Title)

	return r.Get(ctx, id)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// Stats recomputes the snapshot from the live table on every call; nothing
// is cached between requests.
func (r *SQLiteRepository) Stats(ctx context.Context) (core.Stats, error) {
	income, err := r.queries.TypeTotal(ctx, core.Income)
	if err != nil {
		return core.Stats{}, fmt.Errorf("sum income: %w", err)
	}
	expenses, err := r.queries.TypeTotal(ctx, core.Expense)
	if err != nil {
		return core.Stats{}, fmt.Errorf("sum expenses: %w", err)
	}
	categories, err := r.queries.CategorySums(ctx)
	if err != nil {
		return core.Stats{}, fmt.Errorf("category sums: %w", err)
	}

	return core.Stats{
		TotalIncome:   core.Money{Cents: income},
		TotalExpenses: core.Money{Cents: expenses},
		Balance:       core.Money{Cents: income - expenses},
		CategoryStats: categories,
	}, nil
}
