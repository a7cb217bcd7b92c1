package client

import (
	"context"
	"fmt"
	"net/url"
)

// ApprovalClient talks to the remote approval matrix service.
type ApprovalClient struct {
	client *httpClient
}

// NewApprovalClient creates an approval service client for the given base URL.
func NewApprovalClient(baseURL string) *ApprovalClient {
	return &ApprovalClient{client: newHTTPClient(baseURL)}
}

// RequiredApprovers resolves the approval threshold for an amount.
func (c *ApprovalClient) RequiredApprovers(ctx context.Context, amount float64, department string) (Result, error) {
	path := fmt.Sprintf("/api/v1/approvals/approvers?amount=%v&department=%s",
		amount, url.QueryEscape(department))
	return c.client.get(ctx, path)
}

type approvalRequest struct {
	POID      string   `json:"po_id"`
	Approvers []string `json:"approvers"`
	Details   any      `json:"po_details,omitempty"`
}

// SendApprovalRequest dispatches approval requests to the listed approvers.
func (c *ApprovalClient) SendApprovalRequest(ctx context.Context, poID string, approvers []string, details any) (Result, error) {
	return c.client.post(ctx, "/api/v1/approvals/request", approvalRequest{
		POID:      poID,
		Approvers: approvers,
		Details:   details,
	})
}
