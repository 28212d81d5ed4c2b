package recon

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StatusAll is the filter value that matches every status.
const StatusAll = "all"

// Stats summarizes one reconciliation batch for the review screen.
type Stats struct {
	Total           int             `json:"total"`
	MatchedCount    int             `json:"matched_count"`
	PartialCount    int             `json:"partial_count"`
	UnmatchedCount  int             `json:"unmatched_count"`
	ValidatedCount  int             `json:"validated_count"`
	RejectedCount   int             `json:"rejected_count"`
	MatchedAmount   decimal.Decimal `json:"matched_amount"`
	ValidatedAmount decimal.Decimal `json:"validated_amount"`
}

// Summarize counts the batch by status and totals the statement amounts
// behind proposed and validated matches. Purely derived, no side effects.
func Summarize(batch []Reconciliation) Stats {
	stats := Stats{
		Total:           len(batch),
		MatchedAmount:   decimal.Zero,
		ValidatedAmount: decimal.Zero,
	}
	for i := range batch {
		r := &batch[i]
		switch r.Status {
		case StatusMatched:
			stats.MatchedCount++
			stats.MatchedAmount = stats.MatchedAmount.Add(r.Line.Amount)
		case StatusPartial:
			stats.PartialCount++
			stats.MatchedAmount = stats.MatchedAmount.Add(r.Line.Amount)
		case StatusUnmatched:
			stats.UnmatchedCount++
		case StatusValidated:
			stats.ValidatedCount++
			stats.ValidatedAmount = stats.ValidatedAmount.Add(r.Line.Amount)
		case StatusRejected:
			stats.RejectedCount++
		}
	}
	return stats
}

// Filter narrows a batch for manual review. status is StatusAll (or empty)
// for no status filtering, otherwise one exact status. search matches as a
// case-insensitive substring against the statement label or the matched
// transaction's description.
func Filter(batch []Reconciliation, status string, search string) []Reconciliation {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]Reconciliation, 0, len(batch))
	for _, r := range batch {
		if status != "" && status != StatusAll && string(r.Status) != status {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r Reconciliation, search string) bool {
	if strings.Contains(strings.ToLower(r.Line.Label), search) {
		return true
	}
	return r.Match != nil && strings.Contains(strings.ToLower(r.Match.Description), search)
}
