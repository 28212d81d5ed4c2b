package recon

import "fmt"

// InvalidTransitionError is returned when a reviewer action is not allowed
// from the reconciliation's current status. The caller should leave the
// entry untouched and surface the message.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid reconciliation transition: %s -> %s", e.From, e.To)
}

// Validate accepts the proposed match. Only matched and partial entries
// that actually carry a match can be validated; validated is terminal.
func Validate(r *Reconciliation) error {
	if (r.Status == StatusMatched || r.Status == StatusPartial) && r.Match != nil {
		r.Status = StatusValidated
		return nil
	}
	return &InvalidTransitionError{From: r.Status, To: StatusValidated}
}

// Reject discards the proposed match, clearing the matched transaction and
// zeroing the confidence. Rejecting an already-rejected entry is a no-op;
// every other disallowed source status is an InvalidTransitionError.
func Reject(r *Reconciliation) error {
	switch r.Status {
	case StatusMatched, StatusPartial:
		r.Match = nil
		r.Confidence = 0
		r.Status = StatusRejected
		return nil
	case StatusRejected:
		return nil
	default:
		return &InvalidTransitionError{From: r.Status, To: StatusRejected}
	}
}
