package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewBatch() []Reconciliation {
	tx1 := LedgerTransaction{ID: "tx-1", Description: "Facture TOTAL Gabon", Direction: In, Amount: dec("500000")}
	tx2 := LedgerTransaction{ID: "tx-2", Description: "Loyer entrepot Owendo", Direction: Out, Amount: dec("250000")}
	tx3 := LedgerTransaction{ID: "tx-3", Description: "Avoir client Perenco", Direction: In, Amount: dec("80000")}

	return []Reconciliation{
		{Line: StatementLine{ID: "a", Label: "VIR TOTAL GABON", Amount: dec("500000")}, Match: &tx1, Confidence: 100, Status: StatusMatched},
		{Line: StatementLine{ID: "b", Label: "PRLV LOYER OWENDO", Amount: dec("250000")}, Match: &tx2, Confidence: 45, Status: StatusPartial},
		{Line: StatementLine{ID: "c", Label: "FRAIS TENUE DE COMPTE", Amount: dec("12000")}, Status: StatusUnmatched},
		{Line: StatementLine{ID: "d", Label: "VIR PERENCO", Amount: dec("80000")}, Match: &tx3, Confidence: 85, Status: StatusValidated},
		{Line: StatementLine{ID: "e", Label: "CHEQUE 0001934", Amount: dec("30000")}, Status: StatusRejected},
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(reviewBatch())

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.MatchedCount)
	assert.Equal(t, 1, stats.PartialCount)
	assert.Equal(t, 1, stats.UnmatchedCount)
	assert.Equal(t, 1, stats.ValidatedCount)
	assert.Equal(t, 1, stats.RejectedCount)
	assert.True(t, stats.MatchedAmount.Equal(dec("750000")), "matched amount %s", stats.MatchedAmount)
	assert.True(t, stats.ValidatedAmount.Equal(dec("80000")), "validated amount %s", stats.ValidatedAmount)
}

func TestSummarizeEmptyBatch(t *testing.T) {
	stats := Summarize(nil)
	assert.Equal(t, 0, stats.Total)
	assert.True(t, stats.MatchedAmount.IsZero())
	assert.True(t, stats.ValidatedAmount.IsZero())
}

func TestFilter(t *testing.T) {
	batch := reviewBatch()

	t.Run("all statuses with no search returns everything", func(t *testing.T) {
		assert.Len(t, Filter(batch, StatusAll, ""), 5)
		assert.Len(t, Filter(batch, "", ""), 5)
	})

	t.Run("filter by exact status", func(t *testing.T) {
		out := Filter(batch, string(StatusPartial), "")
		require.Len(t, out, 1)
		assert.Equal(t, "b", out[0].Line.ID)
	})

	t.Run("search matches statement label case-insensitively", func(t *testing.T) {
		out := Filter(batch, StatusAll, "perenco")
		require.Len(t, out, 1)
		assert.Equal(t, "d", out[0].Line.ID)
	})

	t.Run("search matches matched transaction description", func(t *testing.T) {
		out := Filter(batch, StatusAll, "entrepot")
		require.Len(t, out, 1)
		assert.Equal(t, "b", out[0].Line.ID)
	})

	t.Run("search combined with status filter", func(t *testing.T) {
		out := Filter(batch, string(StatusMatched), "total")
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].Line.ID)

		assert.Empty(t, Filter(batch, string(StatusRejected), "total"))
	})

	t.Run("no hits yields an empty slice", func(t *testing.T) {
		assert.Empty(t, Filter(batch, StatusAll, "nonexistent"))
	})
}
