package recon

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Signal point values. The table below sums them per candidate; the raw sum
// can exceed 100 (e.g. exact amount + exact date + exact reference +
// counterparty hit = 110) and is clamped for presentation only.
const (
	pointsAmountExact   = 50
	pointsAmountNear    = 20
	pointsDateExact     = 25
	pointsDateNear      = 10
	pointsRefExact      = 25
	pointsRefPartial    = 15
	pointsCounterparty  = 10
	amountTolerancePct  = 1 // percent of the statement amount
	dateToleranceDays   = 2
	matchFloor          = 30
	partialThreshold    = 40
	matchedThreshold    = 70
	maxConfidence       = 100
)

// scoreRule is one independent matching signal. Rules never overlap: the
// "near" variants explicitly exclude the exact case so each pair of fields
// contributes at most once.
type scoreRule struct {
	name    string
	points  int
	applies func(line StatementLine, tx LedgerTransaction) bool
}

var scoreRules = []scoreRule{
	{"amount_exact", pointsAmountExact, amountExact},
	{"amount_near", pointsAmountNear, amountNear},
	{"date_exact", pointsDateExact, dateExact},
	{"date_near", pointsDateNear, dateNear},
	{"reference_exact", pointsRefExact, referenceExact},
	{"reference_partial", pointsRefPartial, referencePartial},
	{"counterparty_in_label", pointsCounterparty, counterpartyInLabel},
}

// scoreCandidate folds the rule table over one line/candidate pair.
// Direction compatibility is checked by the caller; incompatible pairs are
// skipped before scoring.
func scoreCandidate(line StatementLine, tx LedgerTransaction) int {
	total := 0
	for _, rule := range scoreRules {
		if rule.applies(line, tx) {
			total += rule.points
		}
	}
	return total
}

func amountExact(line StatementLine, tx LedgerTransaction) bool {
	return line.Amount.Equal(tx.Amount)
}

func amountNear(line StatementLine, tx LedgerTransaction) bool {
	if line.Amount.Equal(tx.Amount) {
		return false
	}
	diff := line.Amount.Sub(tx.Amount).Abs()
	tolerance := line.Amount.Mul(decimal.New(amountTolerancePct, -2))
	return diff.LessThanOrEqual(tolerance)
}

func dateExact(line StatementLine, tx LedgerTransaction) bool {
	return daysApart(line.Date, tx.Date) == 0
}

func dateNear(line StatementLine, tx LedgerTransaction) bool {
	d := daysApart(line.Date, tx.Date)
	return d > 0 && d <= dateToleranceDays
}

func referenceExact(line StatementLine, tx LedgerTransaction) bool {
	return line.Reference != "" && tx.Reference != "" &&
		strings.EqualFold(line.Reference, tx.Reference)
}

func referencePartial(line StatementLine, tx LedgerTransaction) bool {
	if line.Reference == "" || tx.Reference == "" {
		return false
	}
	if strings.EqualFold(line.Reference, tx.Reference) {
		return false
	}
	a := strings.ToLower(line.Reference)
	b := strings.ToLower(tx.Reference)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// counterpartyInLabel fires when any whitespace-separated word of the
// candidate's counterparty name appears in the statement label.
func counterpartyInLabel(line StatementLine, tx LedgerTransaction) bool {
	if tx.CounterpartyName == "" || line.Label == "" {
		return false
	}
	label := strings.ToLower(line.Label)
	for _, word := range strings.Fields(strings.ToLower(tx.CounterpartyName)) {
		if strings.Contains(label, word) {
			return true
		}
	}
	return false
}

// clampConfidence caps the raw signal sum at 100 for presentation. Status
// thresholds are applied to the raw sum, which is equivalent since every
// threshold is below the cap.
func clampConfidence(raw int) int {
	if raw > maxConfidence {
		return maxConfidence
	}
	return raw
}
