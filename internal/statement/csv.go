// Package statement normalizes raw bank-statement exports into the line
// records the matching engine consumes. Malformed rows are rejected here so
// the engine can assume every line it receives is well formed.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logistiga/bank-reconciliation/internal/recon"
)

const dateLayout = "2006-01-02"

// expected header columns, in order
var columns = []string{"id", "date", "amount", "direction", "label", "reference"}

// ParseCSV reads a normalized statement export. The first row must be the
// header id,date,amount,direction,label,reference; dates are 2006-01-02 and
// amounts positive decimals. A blank id column gets a generated UUID so
// every line is addressable during review.
func ParseCSV(r io.Reader) ([]recon.StatementLine, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("statement is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var lines []recon.StatementLine
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		line, err := parseLine(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func checkHeader(header []string) error {
	if len(header) != len(columns) {
		return fmt.Errorf("expected %d header columns, got %d", len(columns), len(header))
	}
	for i, want := range columns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("unexpected header column %d: %q (want %q)", i+1, header[i], want)
		}
	}
	return nil
}

func parseLine(record []string) (recon.StatementLine, error) {
	var line recon.StatementLine
	if len(record) != len(columns) {
		return line, fmt.Errorf("expected %d columns, got %d", len(columns), len(record))
	}

	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(record[1]), time.UTC)
	if err != nil {
		return line, fmt.Errorf("invalid date %q", record[1])
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return line, fmt.Errorf("invalid amount %q", record[2])
	}
	if !amount.IsPositive() {
		return line, fmt.Errorf("amount must be positive, got %s", amount)
	}

	direction := recon.Direction(strings.ToLower(strings.TrimSpace(record[3])))
	if direction != recon.Credit && direction != recon.Debit {
		return line, fmt.Errorf("invalid direction %q (want credit or debit)", record[3])
	}

	id := strings.TrimSpace(record[0])
	if id == "" {
		id = uuid.NewString()
	}

	line = recon.StatementLine{
		ID:        id,
		Date:      date,
		Amount:    amount,
		Direction: direction,
		Label:     strings.TrimSpace(record[4]),
		Reference: strings.TrimSpace(record[5]),
	}
	return line, nil
}
