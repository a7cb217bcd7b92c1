package client

import (
	"context"
	"fmt"
	"net/url"
)

// BudgetClient talks to the remote budget ledger service.
type BudgetClient struct {
	client *httpClient
}

// NewBudgetClient creates a budget service client for the given base URL.
func NewBudgetClient(baseURL string) *BudgetClient {
	return &BudgetClient{client: newHTTPClient(baseURL)}
}

// CheckAvailability checks whether the department can fund the amount.
func (c *BudgetClient) CheckAvailability(ctx context.Context, department string, amount float64) (Result, error) {
	path := fmt.Sprintf("/api/v1/budgets/check?department=%s&amount=%v",
		url.QueryEscape(department), amount)
	return c.client.get(ctx, path)
}

type reserveRequest struct {
	Department string  `json:"department"`
	Amount     float64 `json:"amount"`
	POID       string  `json:"po_id,omitempty"`
}

// Reserve places a budget reservation for a pending PO.
func (c *BudgetClient) Reserve(ctx context.Context, department string, amount float64, poID string) (Result, error) {
	return c.client.post(ctx, "/api/v1/budgets/reserve", reserveRequest{
		Department: department,
		Amount:     amount,
		POID:       poID,
	})
}

// Release returns a previously reserved amount to the pool.
func (c *BudgetClient) Release(ctx context.Context, department string, amount float64, poID string) (Result, error) {
	return c.client.post(ctx, "/api/v1/budgets/release", reserveRequest{
		Department: department,
		Amount:     amount,
		POID:       poID,
	})
}
