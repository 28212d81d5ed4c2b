package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/logistiga/bank-reconciliation/internal/recon"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores transactions in a map behind a mutex, making tests fast and
// isolated while keeping the same single-writer guarantee as the real
// store.
type MockRepository struct {
	mu           sync.Mutex
	transactions map[string]*recon.LedgerTransaction

	// Hooks for test assertions
	MarkReconciledCalls []string

	// Error injection for testing error paths
	ListErr           error
	MarkReconciledErr error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		transactions: make(map[string]*recon.LedgerTransaction),
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// InsertTransaction stores a transaction in the in-memory map
func (m *MockRepository) InsertTransaction(_ context.Context, tx recon.LedgerTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.transactions[tx.ID]; exists {
		return fmt.Errorf("transaction %s already exists", tx.ID)
	}
	copied := tx
	m.transactions[tx.ID] = &copied
	return nil
}

// ListUnreconciled returns unreconciled transactions in the window,
// ordered by date then id like the SQLite store
func (m *MockRepository) ListUnreconciled(_ context.Context, from, to time.Time) ([]recon.LedgerTransaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []recon.LedgerTransaction
	for _, tx := range m.transactions {
		if tx.Reconciled {
			continue
		}
		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Date.After(to) {
			continue
		}
		out = append(out, *tx)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// GetTransaction retrieves one transaction by id
func (m *MockRepository) GetTransaction(_ context.Context, id string) (*recon.LedgerTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *tx
	return &copied, nil
}

// MarkReconciled flips the reconciled flag, recording the call
func (m *MockRepository) MarkReconciled(_ context.Context, id string) error {
	if m.MarkReconciledErr != nil {
		return m.MarkReconciledErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.MarkReconciledCalls = append(m.MarkReconciledCalls, id)
	tx, ok := m.transactions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	tx.Reconciled = true
	return nil
}
