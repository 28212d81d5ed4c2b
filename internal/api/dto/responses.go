package dto

import (
	"time"

	"github.com/logistiga/bank-reconciliation/internal/recon"
)

// BatchResponse is the full view of one reconciliation batch.
type BatchResponse struct {
	ID              string                   `json:"id"`
	CreatedAt       string                   `json:"created_at"`
	Stats           StatsResponse            `json:"stats"`
	Reconciliations []ReconciliationResponse `json:"reconciliations"`
}

// ReconciliationResponse is one pairing decision.
type ReconciliationResponse struct {
	Line       StatementLineResponse `json:"line"`
	Match      *TransactionResponse  `json:"match,omitempty"`
	Confidence int                   `json:"confidence"`
	Status     string                `json:"status"`
}

// StatementLineResponse mirrors recon.StatementLine for display.
type StatementLineResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Amount    string `json:"amount"`
	Direction string `json:"direction"`
	Label     string `json:"label"`
	Reference string `json:"reference,omitempty"`
}

// TransactionResponse mirrors recon.LedgerTransaction for display.
type TransactionResponse struct {
	ID               string `json:"id"`
	Date             string `json:"date"`
	Amount           string `json:"amount"`
	Direction        string `json:"direction"`
	Reference        string `json:"reference,omitempty"`
	Description      string `json:"description"`
	CounterpartyName string `json:"counterparty_name,omitempty"`
	Reconciled       bool   `json:"reconciled"`
}

// StatsResponse is the review summary for a batch.
type StatsResponse struct {
	Total           int    `json:"total"`
	MatchedCount    int    `json:"matched_count"`
	PartialCount    int    `json:"partial_count"`
	UnmatchedCount  int    `json:"unmatched_count"`
	ValidatedCount  int    `json:"validated_count"`
	RejectedCount   int    `json:"rejected_count"`
	MatchedAmount   string `json:"matched_amount"`
	ValidatedAmount string `json:"validated_amount"`
}

// CommitResponse reports how many validated entries were applied.
type CommitResponse struct {
	CommittedCount int `json:"committed_count"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// FromReconciliation converts a domain reconciliation for the wire.
func FromReconciliation(r recon.Reconciliation) ReconciliationResponse {
	resp := ReconciliationResponse{
		Line: StatementLineResponse{
			ID:        r.Line.ID,
			Date:      r.Line.Date.Format(dateLayout),
			Amount:    r.Line.Amount.String(),
			Direction: string(r.Line.Direction),
			Label:     r.Line.Label,
			Reference: r.Line.Reference,
		},
		Confidence: r.Confidence,
		Status:     string(r.Status),
	}
	if r.Match != nil {
		resp.Match = &TransactionResponse{
			ID:               r.Match.ID,
			Date:             r.Match.Date.Format(dateLayout),
			Amount:           r.Match.Amount.String(),
			Direction:        string(r.Match.Direction),
			Reference:        r.Match.Reference,
			Description:      r.Match.Description,
			CounterpartyName: r.Match.CounterpartyName,
			Reconciled:       r.Match.Reconciled,
		}
	}
	return resp
}

// FromBatch converts a stored batch for the wire.
func FromBatch(id string, createdAt time.Time, batch []recon.Reconciliation) BatchResponse {
	recs := make([]ReconciliationResponse, 0, len(batch))
	for _, r := range batch {
		recs = append(recs, FromReconciliation(r))
	}
	return BatchResponse{
		ID:              id,
		CreatedAt:       createdAt.UTC().Format(time.RFC3339),
		Stats:           FromStats(recon.Summarize(batch)),
		Reconciliations: recs,
	}
}

// FromStats converts domain stats for the wire.
func FromStats(s recon.Stats) StatsResponse {
	return StatsResponse{
		Total:           s.Total,
		MatchedCount:    s.MatchedCount,
		PartialCount:    s.PartialCount,
		UnmatchedCount:  s.UnmatchedCount,
		ValidatedCount:  s.ValidatedCount,
		RejectedCount:   s.RejectedCount,
		MatchedAmount:   s.MatchedAmount.String(),
		ValidatedAmount: s.ValidatedAmount.String(),
	}
}
