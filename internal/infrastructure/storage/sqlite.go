// Package storage provides the ledger repository backing the
// reconciliation engine. Amounts are persisted as exact decimal text and
// dates as calendar-date text so nothing round-trips through binary floats.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/logistiga/bank-reconciliation/internal/recon"
)

const dateLayout = "2006-01-02"

// ErrNotFound is returned when a transaction id does not exist.
var ErrNotFound = errors.New("ledger transaction not found")

const schema = `
CREATE TABLE IF NOT EXISTS ledger_transactions (
	id                TEXT PRIMARY KEY,
	date              TEXT NOT NULL,
	amount            TEXT NOT NULL,
	direction         TEXT NOT NULL CHECK (direction IN ('in', 'out')),
	reference         TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	counterparty_name TEXT NOT NULL DEFAULT '',
	reconciled        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_ledger_unreconciled
	ON ledger_transactions (reconciled, date);
`

// Storage provides SQLite database access for ledger transactions.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time checks that Storage implements Repository and recon.Ledger
var (
	_ Repository   = (*Storage)(nil)
	_ recon.Ledger = (*Storage)(nil)
)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Serialize writers so concurrent commits on the same transaction set
	// never interleave on an intermediate state.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// InsertTransaction adds a ledger transaction
func (s *Storage) InsertTransaction(ctx context.Context, tx recon.LedgerTransaction) error {
	query := `
	INSERT INTO ledger_transactions
	(id, date, amount, direction, reference, description, counterparty_name, reconciled)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.Date.Format(dateLayout),
		tx.Amount.String(),
		string(tx.Direction),
		tx.Reference,
		tx.Description,
		tx.CounterpartyName,
		tx.Reconciled,
	)
	return err
}

// ListUnreconciled returns unreconciled transactions inside the date window,
// ordered by date then id for deterministic candidate ordering.
func (s *Storage) ListUnreconciled(ctx context.Context, from, to time.Time) ([]recon.LedgerTransaction, error) {
	query := `
	SELECT id, date, amount, direction, reference, description, counterparty_name, reconciled
	FROM ledger_transactions
	WHERE reconciled = 0
	`
	args := []any{}
	if !from.IsZero() {
		query += " AND date >= ?"
		args = append(args, from.Format(dateLayout))
	}
	if !to.IsZero() {
		query += " AND date <= ?"
		args = append(args, to.Format(dateLayout))
	}
	query += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []recon.LedgerTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// GetTransaction retrieves one transaction by id
func (s *Storage) GetTransaction(ctx context.Context, id string) (*recon.LedgerTransaction, error) {
	query := `
	SELECT id, date, amount, direction, reference, description, counterparty_name, reconciled
	FROM ledger_transactions WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// MarkReconciled flips the reconciled flag; already-reconciled rows are
// left as they are and a missing id is reported.
func (s *Storage) MarkReconciled(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE ledger_transactions SET reconciled = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (recon.LedgerTransaction, error) {
	var tx recon.LedgerTransaction
	var date, amount, direction string

	err := row.Scan(
		&tx.ID,
		&date,
		&amount,
		&direction,
		&tx.Reference,
		&tx.Description,
		&tx.CounterpartyName,
		&tx.Reconciled,
	)
	if err != nil {
		return tx, err
	}

	tx.Date, err = time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return tx, fmt.Errorf("transaction %s: bad date %q: %w", tx.ID, date, err)
	}
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return tx, fmt.Errorf("transaction %s: bad amount %q: %w", tx.ID, amount, err)
	}
	tx.Direction = recon.Direction(direction)

	return tx, nil
}
