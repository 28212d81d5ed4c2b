package recon

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEmptyInputs(t *testing.T) {
	t.Run("empty candidates leaves every line unmatched", func(t *testing.T) {
		lines := []StatementLine{
			{ID: "a", Date: Day(2024, 3, 10), Amount: dec("100"), Direction: Credit},
			{ID: "b", Date: Day(2024, 3, 11), Amount: dec("200"), Direction: Debit},
		}

		out := Match(lines, nil)

		require.Len(t, out, 2)
		for _, r := range out {
			assert.Equal(t, StatusUnmatched, r.Status)
			assert.Nil(t, r.Match)
			assert.Equal(t, 0, r.Confidence)
		}
	})

	t.Run("empty lines yield empty result", func(t *testing.T) {
		out := Match(nil, []LedgerTransaction{{ID: "tx", Amount: dec("1"), Direction: In}})
		assert.Empty(t, out)
	})
}

func TestMatchPreservesInputOrder(t *testing.T) {
	var lines []StatementLine
	var candidates []LedgerTransaction
	for i := 0; i < 20; i++ {
		lines = append(lines, StatementLine{
			ID:        fmt.Sprintf("line-%02d", i),
			Date:      Day(2024, 3, 1+i),
			Amount:    dec(fmt.Sprintf("%d", 1000+i)),
			Direction: Credit,
		})
		candidates = append(candidates, LedgerTransaction{
			ID:        fmt.Sprintf("tx-%02d", i),
			Date:      Day(2024, 3, 1+i),
			Amount:    dec(fmt.Sprintf("%d", 1000+i)),
			Direction: In,
		})
	}

	out := Match(lines, candidates)

	require.Len(t, out, len(lines))
	for i, r := range out {
		assert.Equal(t, lines[i].ID, r.Line.ID, "output index %d must carry input line %d", i, i)
	}
}

func TestMatchPerfectTriple(t *testing.T) {
	lines := []StatementLine{{
		ID:        "line-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("500000"),
		Direction: Credit,
		Reference: "FAC-2024-0042",
	}}
	candidates := []LedgerTransaction{{
		ID:        "tx-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("500000"),
		Direction: In,
		Reference: "FAC-2024-0042",
	}}

	out := Match(lines, candidates)

	require.Len(t, out, 1)
	assert.Equal(t, StatusMatched, out[0].Status)
	assert.Equal(t, 100, out[0].Confidence)
	require.NotNil(t, out[0].Match)
	assert.Equal(t, "tx-1", out[0].Match.ID)
}

func TestMatchConfidenceClampedAt100(t *testing.T) {
	// Amount + date + reference + counterparty sum to a raw 110.
	lines := []StatementLine{{
		ID:        "line-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("500000"),
		Direction: Credit,
		Reference: "FAC-2024-0042",
		Label:     "VIR TOTAL GABON",
	}}
	candidates := []LedgerTransaction{{
		ID:               "tx-1",
		Date:             Day(2024, 3, 10),
		Amount:           dec("500000"),
		Direction:        In,
		Reference:        "FAC-2024-0042",
		CounterpartyName: "TOTAL Gabon",
	}}

	out := Match(lines, candidates)

	require.Len(t, out, 1)
	assert.Equal(t, StatusMatched, out[0].Status)
	assert.Equal(t, 100, out[0].Confidence)
}

func TestMatchSkipsIncompatibleDirections(t *testing.T) {
	line := StatementLine{
		ID:        "line-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("500000"),
		Direction: Credit,
		Reference: "FAC-2024-0042",
	}
	// Identical in every field except direction.
	candidate := LedgerTransaction{
		ID:        "tx-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("500000"),
		Direction: Out,
		Reference: "FAC-2024-0042",
	}

	out := Match([]StatementLine{line}, []LedgerTransaction{candidate})

	require.Len(t, out, 1)
	assert.Equal(t, StatusUnmatched, out[0].Status)
	assert.Nil(t, out[0].Match)
	assert.Equal(t, 0, out[0].Confidence)
}

func TestMatchPartialNearAmount(t *testing.T) {
	// 0.8% amount difference (+20) plus exact date (+25) lands at 45.
	lines := []StatementLine{{
		ID:        "line-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("100000"),
		Direction: Credit,
	}}
	candidates := []LedgerTransaction{{
		ID:        "tx-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("100800"),
		Direction: In,
	}}

	out := Match(lines, candidates)

	require.Len(t, out, 1)
	assert.Equal(t, StatusPartial, out[0].Status)
	assert.Equal(t, 45, out[0].Confidence)
	require.NotNil(t, out[0].Match)
	assert.Equal(t, "tx-1", out[0].Match.ID)
}

func TestMatchBelowFloorRecordsNoMatch(t *testing.T) {
	// 50% amount difference, different month: no signal fires.
	lines := []StatementLine{{
		ID:        "line-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("100000"),
		Direction: Credit,
	}}
	candidates := []LedgerTransaction{{
		ID:        "tx-1",
		Date:      Day(2024, 5, 20),
		Amount:    dec("150000"),
		Direction: In,
	}}

	out := Match(lines, candidates)

	require.Len(t, out, 1)
	assert.Equal(t, StatusUnmatched, out[0].Status)
	assert.Nil(t, out[0].Match)
	assert.Equal(t, 0, out[0].Confidence)
}

func TestMatchWeakSignalStaysUnmatched(t *testing.T) {
	// Exact date only (+25): below the floor, no match recorded, but the
	// confidence survives for audit.
	lines := []StatementLine{{
		ID:        "line-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("100000"),
		Direction: Credit,
	}}
	candidates := []LedgerTransaction{{
		ID:        "tx-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("700000"),
		Direction: In,
	}}

	out := Match(lines, candidates)

	require.Len(t, out, 1)
	assert.Equal(t, StatusUnmatched, out[0].Status)
	assert.Nil(t, out[0].Match)
	assert.Equal(t, 25, out[0].Confidence)
}

func TestMatchTieBreaking(t *testing.T) {
	line := StatementLine{
		ID:        "line-1",
		Date:      Day(2024, 3, 10),
		Amount:    dec("100000"),
		Direction: Credit,
	}

	t.Run("earliest date wins on equal score", func(t *testing.T) {
		candidates := []LedgerTransaction{
			{ID: "later", Date: Day(2024, 3, 11), Amount: dec("100000"), Direction: In},
			{ID: "earlier", Date: Day(2024, 3, 9), Amount: dec("100000"), Direction: In},
		}

		out := Match([]StatementLine{line}, candidates)

		require.NotNil(t, out[0].Match)
		assert.Equal(t, "earlier", out[0].Match.ID)
	})

	t.Run("first seen wins on equal score and date", func(t *testing.T) {
		candidates := []LedgerTransaction{
			{ID: "first", Date: Day(2024, 3, 11), Amount: dec("100000"), Direction: In},
			{ID: "second", Date: Day(2024, 3, 11), Amount: dec("100000"), Direction: In},
		}

		out := Match([]StatementLine{line}, candidates)

		require.NotNil(t, out[0].Match)
		assert.Equal(t, "first", out[0].Match.ID)
	})
}

func TestMatchAllowsSharedCandidate(t *testing.T) {
	// Per-line argmax: the same ledger transaction can win against two
	// different lines. Global one-to-one assignment is deliberately not
	// enforced.
	lines := []StatementLine{
		{ID: "a", Date: Day(2024, 3, 10), Amount: dec("100000"), Direction: Credit},
		{ID: "b", Date: Day(2024, 3, 10), Amount: dec("100000"), Direction: Credit},
	}
	candidates := []LedgerTransaction{
		{ID: "tx-1", Date: Day(2024, 3, 10), Amount: dec("100000"), Direction: In},
	}

	out := Match(lines, candidates)

	require.Len(t, out, 2)
	require.NotNil(t, out[0].Match)
	require.NotNil(t, out[1].Match)
	assert.Equal(t, "tx-1", out[0].Match.ID)
	assert.Equal(t, "tx-1", out[1].Match.ID)
}

func TestMatchResultOwnsMatchCopy(t *testing.T) {
	lines := []StatementLine{{ID: "a", Date: Day(2024, 3, 10), Amount: dec("100"), Direction: Credit}}
	candidates := []LedgerTransaction{{ID: "tx-1", Date: Day(2024, 3, 10), Amount: dec("100"), Direction: In}}

	out := Match(lines, candidates)

	require.NotNil(t, out[0].Match)
	candidates[0].Description = "mutated after the run"
	assert.Empty(t, out[0].Match.Description)
}

func TestMatchContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lines := []StatementLine{{ID: "a", Date: Day(2024, 3, 10), Amount: dec("100"), Direction: Credit}}
	out, err := MatchContext(ctx, lines, nil)

	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
}
