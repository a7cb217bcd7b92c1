package client

import (
	"context"
	"fmt"
	"net/url"
)

// SupplierClient talks to the remote supplier directory service.
type SupplierClient struct {
	client *httpClient
}

// NewSupplierClient creates a supplier service client for the given base URL.
func NewSupplierClient(baseURL string) *SupplierClient {
	return &SupplierClient{client: newHTTPClient(baseURL)}
}

// ValidateSupplier checks that the supplier exists and is approved.
func (c *SupplierClient) ValidateSupplier(ctx context.Context, supplierID string) (Result, error) {
	path := fmt.Sprintf("/api/v1/suppliers/validate?supplier_id=%s", url.QueryEscape(supplierID))
	return c.client.get(ctx, path)
}

// CheckCapacity checks that the supplier can absorb the order value.
func (c *SupplierClient) CheckCapacity(ctx context.Context, supplierID string, orderValue float64) (Result, error) {
	path := fmt.Sprintf("/api/v1/suppliers/capacity?supplier_id=%s&order_value=%v",
		url.QueryEscape(supplierID), orderValue)
	return c.client.get(ctx, path)
}
