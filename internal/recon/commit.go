package recon

import (
	"context"
	"fmt"
)

// Ledger is the collaborator that owns the transactions. MarkReconciled
// must be idempotent: flagging an already-reconciled transaction is a
// no-op, not an error. Implementations serialize concurrent writes on the
// same transaction.
type Ledger interface {
	MarkReconciled(ctx context.Context, txID string) error
}

// Commit applies every validated reconciliation back to the ledger and
// returns how many entries were committed. Entries in any other status are
// left untouched, so unreviewed proposals stay pending for a later run.
// Running Commit twice over the same batch yields the same count and the
// same ledger state.
func Commit(ctx context.Context, ledger Ledger, batch []Reconciliation) (int, error) {
	committed := 0
	for i := range batch {
		r := &batch[i]
		if r.Status != StatusValidated || r.Match == nil {
			continue
		}
		if err := ledger.MarkReconciled(ctx, r.Match.ID); err != nil {
			return committed, fmt.Errorf("mark transaction %s reconciled: %w", r.Match.ID, err)
		}
		r.Match.Reconciled = true
		committed++
	}
	return committed, nil
}
