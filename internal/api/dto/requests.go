package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/logistiga/bank-reconciliation/internal/recon"
)

const dateLayout = "2006-01-02"

// CreateBatchRequest starts a reconciliation run: the normalized statement
// lines plus an optional candidate date window forwarded to the ledger.
type CreateBatchRequest struct {
	Lines []StatementLineRequest `json:"lines" binding:"required"`
	From  string                 `json:"from,omitempty"`
	To    string                 `json:"to,omitempty"`
}

// StatementLineRequest mirrors recon.StatementLine on the wire. Amounts
// travel as strings so they stay exact decimals end to end.
type StatementLineRequest struct {
	ID        string `json:"id"`
	Date      string `json:"date" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Direction string `json:"direction" binding:"required"`
	Label     string `json:"label"`
	Reference string `json:"reference,omitempty"`
}

// ToDomain validates and converts one wire line.
func (r StatementLineRequest) ToDomain() (recon.StatementLine, error) {
	var line recon.StatementLine

	date, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
	if err != nil {
		return line, fmt.Errorf("invalid date %q (want %s)", r.Date, dateLayout)
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return line, fmt.Errorf("invalid amount %q", r.Amount)
	}
	if !amount.IsPositive() {
		return line, fmt.Errorf("amount must be positive, got %s", amount)
	}

	direction := recon.Direction(strings.ToLower(r.Direction))
	if direction != recon.Credit && direction != recon.Debit {
		return line, fmt.Errorf("invalid direction %q (want credit or debit)", r.Direction)
	}

	line = recon.StatementLine{
		ID:        r.ID,
		Date:      date,
		Amount:    amount,
		Direction: direction,
		Label:     r.Label,
		Reference: r.Reference,
	}
	return line, nil
}

// Window parses the optional candidate date window. Zero times mean
// "unbounded" on that side.
func (r CreateBatchRequest) Window() (from, to time.Time, err error) {
	if r.From != "" {
		from, err = time.ParseInLocation(dateLayout, r.From, time.UTC)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date %q", r.From)
		}
	}
	if r.To != "" {
		to, err = time.ParseInLocation(dateLayout, r.To, time.UTC)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date %q", r.To)
		}
	}
	return from, to, nil
}
