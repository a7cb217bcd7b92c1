package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
)

// Threshold is one rung of the approval matrix, evaluated lowest-first.
type Threshold struct {
	MaxAmount         float64  `json:"max_amount"`
	RequiredApprovers []string `json:"required_approvers"`
	AutoApprove       bool     `json:"auto_approve"`
}

// Approver holds contact details for one approver role.
type Approver struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type approvalMatrixData struct {
	Thresholds []Threshold         `json:"thresholds"`
	Approvers  map[string]Approver `json:"approvers"`
}

// ApprovalMatrix resolves approval requirements from a static threshold table.
type ApprovalMatrix struct {
	data approvalMatrixData
}

// NewApprovalMatrix loads the approval matrix from a JSON file.
func NewApprovalMatrix(path string) (*ApprovalMatrix, error) {
	var data approvalMatrixData
	if err := loadJSON(path, &data); err != nil {
		return nil, err
	}
	return &ApprovalMatrix{data: data}, nil
}

// RequiredApprovers returns the matching threshold for the amount. Amounts
// above every configured threshold fall back to the highest one with
// auto-approval disabled.
func (m *ApprovalMatrix) RequiredApprovers(_ context.Context, amount float64, _ string) (client.Result, error) {
	for _, t := range m.data.Thresholds {
		if amount <= t.MaxAmount {
			return client.Result{
				"approvers_required": t.RequiredApprovers,
				"approval_needed":    !t.AutoApprove,
				"threshold":          t.MaxAmount,
				"auto_approve":       t.AutoApprove,
				"amount":             amount,
				"message":            fmt.Sprintf("Approval requirements determined for $%.2f", amount),
			}, nil
		}
	}

	highest := Threshold{RequiredApprovers: []string{"director"}}
	if n := len(m.data.Thresholds); n > 0 {
		highest = m.data.Thresholds[n-1]
	}
	return client.Result{
		"approvers_required": highest.RequiredApprovers,
		"approval_needed":    true,
		"threshold":          highest.MaxAmount,
		"auto_approve":       false,
		"amount":             amount,
		"message":            fmt.Sprintf("Using highest threshold for $%.2f", amount),
	}, nil
}

// SendApprovalRequest records an approval request per approver role.
func (m *ApprovalMatrix) SendApprovalRequest(_ context.Context, poID string, approvers []string, _ any) (client.Result, error) {
	sent := make([]map[string]any, 0, len(approvers))
	for _, role := range approvers {
		info, ok := m.data.Approvers[role]
		if !ok {
			info = Approver{
				Name:  fmt.Sprintf("Unknown %s", role),
				Email: fmt.Sprintf("%s@company.com", role),
			}
		}
		sent = append(sent, map[string]any{
			"role":    role,
			"name":    info.Name,
			"email":   info.Email,
			"sent_at": time.Now().Format(time.RFC3339),
		})
	}

	return client.Result{
		"requests_sent":           len(approvers),
		"approvers":               sent,
		"po_id":                   poID,
		"estimated_response_time": "24-48 hours",
		"message":                 fmt.Sprintf("Approval requests sent to %d approvers for %s", len(approvers), poID),
	}, nil
}
