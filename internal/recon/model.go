// Package recon implements the bank-reconciliation matching engine.
//
// The engine pairs normalized bank-statement lines against unreconciled
// ledger transactions, scores each proposed pairing with an integer
// confidence, and tracks the reviewer's accept/reject decisions until the
// batch is committed back to the ledger.
package recon

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction describes which way money moved. Statement lines use
// Credit/Debit, ledger transactions use In/Out; a statement credit is only
// ever compatible with a ledger inflow and a debit with an outflow.
type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
	In     Direction = "in"
	Out    Direction = "out"
)

// compatible reports whether a statement-side direction can pair with a
// ledger-side direction. Incompatible pairs never score.
func compatible(line, tx Direction) bool {
	return (line == Credit && tx == In) || (line == Debit && tx == Out)
}

// Status is the lifecycle state of a Reconciliation. Matched, Partial and
// Unmatched are engine-assigned; Validated and Rejected are terminal
// reviewer decisions.
type Status string

const (
	StatusMatched   Status = "matched"
	StatusPartial   Status = "partial"
	StatusUnmatched Status = "unmatched"
	StatusValidated Status = "validated"
	StatusRejected  Status = "rejected"
)

// StatementLine is one row extracted from a bank statement, already
// normalized by the importer. Amount is always positive; Direction carries
// the sign. Date holds a calendar date (midnight UTC, no time component).
type StatementLine struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Direction Direction       `json:"direction"`
	Label     string          `json:"label"`
	Reference string          `json:"reference,omitempty"`
}

// LedgerTransaction is one internal accounting movement eligible for
// matching. The engine only reads these; Commit flips Reconciled through
// the Ledger interface.
type LedgerTransaction struct {
	ID               string          `json:"id"`
	Date             time.Time       `json:"date"`
	Amount           decimal.Decimal `json:"amount"`
	Direction        Direction       `json:"direction"`
	Reference        string          `json:"reference,omitempty"`
	Description      string          `json:"description"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	Reconciled       bool            `json:"reconciled"`
}

// Reconciliation is the pairing decision for one statement line. Match is
// nil for unmatched and rejected entries; at most one ledger transaction is
// ever referenced.
type Reconciliation struct {
	Line       StatementLine      `json:"line"`
	Match      *LedgerTransaction `json:"match,omitempty"`
	Confidence int                `json:"confidence"`
	Status     Status             `json:"status"`
}

// Day builds the calendar date used throughout the engine.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// truncateDay drops any time component so date comparisons work on
// calendar days regardless of how the caller parsed the input.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysApart returns the absolute distance between two dates in whole
// calendar days.
func daysApart(a, b time.Time) int {
	d := int(truncateDay(a).Sub(truncateDay(b)).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}
