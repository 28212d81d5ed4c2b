package recon

import "context"

// Match pairs each statement line with its best-scoring type-compatible
// candidate. The result is index-preserving: output[i] is the decision for
// lines[i]. Pure and deterministic for a fixed input order.
//
// Candidates are expected to be pre-filtered to reconciled == false by the
// ledger collaborator; the engine does not re-check the flag.
func Match(lines []StatementLine, candidates []LedgerTransaction) []Reconciliation {
	out, _ := MatchContext(context.Background(), lines, candidates)
	return out
}

// MatchContext is Match with cancellation checked between statement lines,
// so a long run over a large batch can be interrupted without tearing down
// a partially scored line.
func MatchContext(ctx context.Context, lines []StatementLine, candidates []LedgerTransaction) ([]Reconciliation, error) {
	out := make([]Reconciliation, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = matchLine(line, candidates)
	}
	return out, nil
}

// matchLine scores every compatible candidate for one line and applies the
// selection and threshold rules. Ties on score are broken by earliest
// candidate date, then by input order (first seen wins).
func matchLine(line StatementLine, candidates []LedgerTransaction) Reconciliation {
	bestIdx := -1
	bestScore := 0

	for i := range candidates {
		if !compatible(line.Direction, candidates[i].Direction) {
			continue
		}
		score := scoreCandidate(line, candidates[i])
		if score == 0 {
			continue
		}
		switch {
		case score > bestScore:
			bestIdx, bestScore = i, score
		case score == bestScore && bestIdx >= 0 &&
			truncateDay(candidates[i].Date).Before(truncateDay(candidates[bestIdx].Date)):
			bestIdx = i
		}
	}

	rec := Reconciliation{Line: line, Status: StatusUnmatched}
	if bestIdx < 0 {
		return rec
	}

	switch {
	case bestScore >= matchedThreshold:
		rec.Status = StatusMatched
	case bestScore >= partialThreshold:
		rec.Status = StatusPartial
	}

	// Below the floor no match is recorded, whatever the nominal best
	// candidate was. Unmatched entries keep their confidence for audit but
	// never carry a match.
	if bestScore >= matchFloor && rec.Status != StatusUnmatched {
		tx := candidates[bestIdx]
		rec.Match = &tx
	}
	rec.Confidence = clampConfidence(bestScore)

	return rec
}
