package collab

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
)

// Budget is one department's ledger entry.
type Budget struct {
	Name       string  `json:"name"`
	Allocated  float64 `json:"allocated"`
	Spent      float64 `json:"spent"`
	Reserved   float64 `json:"reserved"`
	FiscalYear string  `json:"fiscal_year"`
}

// BudgetLedger owns the department budget ledger. Reservations mutate the
// ledger and are written back to durable storage.
type BudgetLedger struct {
	mu      sync.Mutex
	path    string
	budgets map[string]*Budget
	log     zerolog.Logger
}

// NewBudgetLedger loads the budget ledger from a JSON file.
func NewBudgetLedger(path string, log zerolog.Logger) (*BudgetLedger, error) {
	budgets := make(map[string]*Budget)
	if err := loadJSON(path, &budgets); err != nil {
		return nil, err
	}
	return &BudgetLedger{path: path, budgets: budgets, log: log}, nil
}

func (l *BudgetLedger) available(b *Budget) float64 {
	return b.Allocated - b.Spent - b.Reserved
}

// CheckAvailability reports whether the department can fund the amount.
func (l *BudgetLedger) CheckAvailability(_ context.Context, department string, amount float64) (client.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	budget, ok := l.budgets[department]
	if !ok {
		return client.Result{
			"available":        false,
			"amount_requested": amount,
			"amount_available": 0.0,
			"message":          fmt.Sprintf("Department %s budget not found", department),
		}, nil
	}

	available := l.available(budget)
	return client.Result{
		"available":        amount <= available,
		"amount_requested": amount,
		"amount_available": available,
		"budget_details":   budget,
		"message":          fmt.Sprintf("Budget check: requested $%.2f, available $%.2f", amount, available),
	}, nil
}

// Reserve earmarks budget for a pending PO and persists the new ledger state.
func (l *BudgetLedger) Reserve(_ context.Context, department string, amount float64, poID string) (client.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	budget, ok := l.budgets[department]
	if !ok {
		return client.Result{
			"reserved": false,
			"po_id":    poID,
			"message":  fmt.Sprintf("Department %s not found", department),
		}, nil
	}

	available := l.available(budget)
	if amount > available {
		return client.Result{
			"reserved": false,
			"po_id":    poID,
			"message":  fmt.Sprintf("Insufficient budget: requested $%.2f, available $%.2f", amount, available),
		}, nil
	}

	budget.Reserved += amount
	l.persist()

	return client.Result{
		"reserved":           true,
		"amount_reserved":    amount,
		"new_reserved_total": budget.Reserved,
		"po_id":              poID,
		"message":            fmt.Sprintf("Successfully reserved $%.2f for %s", amount, poID),
	}, nil
}

// Release returns a previously reserved amount to the pool.
func (l *BudgetLedger) Release(_ context.Context, department string, amount float64, poID string) (client.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	budget, ok := l.budgets[department]
	if !ok {
		return client.Result{
			"released": false,
			"po_id":    poID,
			"message":  fmt.Sprintf("Department %s not found", department),
		}, nil
	}

	if budget.Reserved < amount {
		return client.Result{
			"released": false,
			"po_id":    poID,
			"message":  fmt.Sprintf("Cannot release $%.2f: only $%.2f reserved", amount, budget.Reserved),
		}, nil
	}

	budget.Reserved -= amount
	l.persist()

	return client.Result{
		"released":           true,
		"amount_released":    amount,
		"new_reserved_total": budget.Reserved,
		"po_id":              poID,
		"message":            fmt.Sprintf("Successfully released $%.2f reservation", amount),
	}, nil
}

// persist writes the ledger back to disk. Callers hold the mutex.
func (l *BudgetLedger) persist() {
	if err := saveJSON(l.path, l.budgets); err != nil {
		l.log.Warn().Err(err).Str("path", l.path).Msg("budget ledger: failed to persist")
	}
}
