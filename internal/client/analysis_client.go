package client

import (
	"context"
	"fmt"
)

// AnalysisClient talks to the optional request-analysis service. The
// annotation it produces is advisory only; callers must treat every failure
// as non-fatal.
type AnalysisClient struct {
	client *httpClient
}

// NewAnalysisClient creates an analysis client for the given base URL.
func NewAnalysisClient(baseURL string) *AnalysisClient {
	return &AnalysisClient{client: newHTTPClient(baseURL)}
}

type analyzeRequest struct {
	POID       string  `json:"po_id"`
	SupplierID string  `json:"supplier_id"`
	Amount     float64 `json:"amount"`
	Department string  `json:"department"`
}

// Analyze returns a short free-text assessment of the PO request.
func (c *AnalysisClient) Analyze(ctx context.Context, poID, supplierID string, amount float64, department string) (string, error) {
	result, err := c.client.post(ctx, "/api/v1/analyze", analyzeRequest{
		POID:       poID,
		SupplierID: supplierID,
		Amount:     amount,
		Department: department,
	})
	if err != nil {
		return "", err
	}
	if result.IsError() {
		return "", fmt.Errorf("analysis service: %s", result.Message())
	}
	return result.Str("analysis"), nil
}
