package storage

import (
	"context"
	"time"

	"github.com/logistiga/bank-reconciliation/internal/recon"
)

// Repository defines the ledger storage interface. It satisfies
// recon.Ledger so a repository can be handed straight to the commit step,
// and allows swapping implementations (SQLite, PostgreSQL, mock).
type Repository interface {
	// ListUnreconciled returns the matching candidates for one run: every
	// transaction with reconciled = false whose date falls inside the
	// inclusive window. A zero from/to disables that bound.
	ListUnreconciled(ctx context.Context, from, to time.Time) ([]recon.LedgerTransaction, error)

	// GetTransaction retrieves one transaction by id.
	GetTransaction(ctx context.Context, id string) (*recon.LedgerTransaction, error)

	// InsertTransaction adds a ledger transaction, typically from the host
	// application's bookkeeping flow or a test fixture.
	InsertTransaction(ctx context.Context, tx recon.LedgerTransaction) error

	// MarkReconciled flips the reconciled flag. Idempotent: flagging an
	// already-reconciled transaction is a no-op.
	MarkReconciled(ctx context.Context, id string) error

	Close() error
}
