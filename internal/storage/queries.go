package storage

import (
	"context"
	"database/sql"
	"time"

	"tally/internal/core"
)

// Queries wraps the raw SQL against the transactions table. Timestamps are
// stored as unix milliseconds so date ordering is plain integer ordering.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const transactionColumns = `id, title, amount_cents, category, description, date_ms, type, created_at_ms`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		tx          core.Transaction
		dateMs      int64
		createdAtMs int64
		txType      string
	)
	err := row.Scan(&tx.ID, &tx.Title, &tx.Amount.Cents, &tx.Category, &tx.Description, &dateMs, &txType, &createdAtMs)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.Date = time.UnixMilli(dateMs).UTC()
	tx.Type = core.TransactionType(txType)
	tx.CreatedAt = time.UnixMilli(createdAtMs).UTC()
	return tx, nil
}

func (q *Queries) InsertTransaction(ctx context.Context, tx core.Transaction) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Title, tx.Amount.Cents, tx.Category, tx.Description,
		tx.Date.UnixMilli(), string(tx.Type), tx.CreatedAt.UnixMilli())
	return err
}

func (q *Queries) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	return scanTransaction(row)
}

// ListTransactions returns all records ordered by date descending, with
// created_at and id as tie-breaks so the order is stable.
func (q *Queries) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 ORDER BY date_ms DESC, created_at_ms DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// UpdateTransaction overwrites every mutable column. Returns the number of
// affected rows so the caller can map zero to not-found.
func (q *Queries) UpdateTransaction(ctx context.Context, id string, tx core.Transaction) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE transactions
		 SET title = ?, amount_cents = ?, category = ?, description = ?, date_ms = ?, type = ?
		 WHERE id = ?`,
		tx.Title, tx.Amount.Cents, tx.Category, tx.Description,
		tx.Date.UnixMilli(), string(tx.Type), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// TypeTotal sums amount_cents over records of one transaction type.
func (q *Queries) TypeTotal(ctx context.Context, txType core.TransactionType) (int64, error) {
	var total int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM transactions WHERE type = ?`,
		string(txType)).Scan(&total)
	return total, err
}

// CategorySums groups all records (both types) by category, summing amounts
// and counting rows, largest total first.
func (q *Queries) CategorySums(ctx context.Context) ([]core.CategoryStat, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents) AS total, COUNT(*) AS cnt
		 FROM transactions
		 GROUP BY category
		 ORDER BY total DESC, category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []core.CategoryStat{}
	for rows.Next() {
		var cs core.CategoryStat
		if err := rows.Scan(&cs.Category, &cs.Total.Cents, &cs.Count); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}
