// Package workflow implements the purchase-order processing pipeline: the
// shared workflow state, the stage router and the orchestrator that drives
// the stages to completion.
package workflow

import (
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/payment"
)

// Decision is the business outcome of a workflow run.
type Decision string

const (
	DecisionUnset           Decision = ""
	DecisionApproved        Decision = "APPROVED"
	DecisionRejected        Decision = "REJECTED"
	DecisionPendingApproval Decision = "PENDING_APPROVAL"
	DecisionError           Decision = "ERROR"
)

// POItem is one line of a purchase-order request.
type POItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// PORequest is the immutable submission. The only mutation the pipeline
// performs is injecting the assigned PO id during validation.
type PORequest struct {
	POID        string   `json:"po_id,omitempty"`
	SupplierID  string   `json:"supplier_id"`
	Amount      float64  `json:"amount"`
	Department  string   `json:"department"`
	Items       []POItem `json:"items"`
	RequestedBy string   `json:"requested_by,omitempty"`
}

// State is the single mutable record threaded through every stage. One
// instance exists per PO submission; it is never shared across runs and
// needs no locking.
type State struct {
	POID               string          `json:"po_id"`
	Request            *PORequest      `json:"po_request"`
	SupplierValidation client.Result   `json:"supplier_validation,omitempty"`
	BudgetCheck        client.Result   `json:"budget_check,omitempty"`
	ApprovalStatus     client.Result   `json:"approval_status,omitempty"`
	PaymentPlan        *payment.Plan   `json:"payment_plan,omitempty"`
	PaymentAttempted   bool            `json:"payment_attempted"`
	FinalDecision      Decision        `json:"final_decision"`
	DecisionReason     string          `json:"decision_reason"`
	Notifications      []client.Result `json:"notifications,omitempty"`
	Errors             []string        `json:"errors"`
	Messages           []string        `json:"messages"`
	ProcessingTime     float64         `json:"processing_time"`

	// requestInvalid gates the supplier/budget/approval stages: they must
	// only run against a request whose required fields validated.
	requestInvalid bool
}

// NewState creates the initial state for one submission.
func NewState(req *PORequest) *State {
	return &State{
		POID:     req.POID,
		Request:  req,
		Errors:   make([]string, 0),
		Messages: make([]string, 0),
	}
}

// SetDecision records the business outcome. REJECTED and ERROR freeze the
// outcome against downgrades: a later stage may replace them with an
// equally severe decision but never with APPROVED or PENDING_APPROVAL.
func (s *State) SetDecision(d Decision, reason string) {
	frozen := s.FinalDecision == DecisionRejected || s.FinalDecision == DecisionError
	downgrade := d == DecisionApproved || d == DecisionPendingApproval
	if frozen && downgrade {
		return
	}
	s.FinalDecision = d
	s.DecisionReason = reason
}

// AppendError appends to the append-only error log.
func (s *State) AppendError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// AppendMessage appends to the append-only audit trail.
func (s *State) AppendMessage(msg string) {
	s.Messages = append(s.Messages, msg)
}

// validateRequest checks the required fields of a submission.
func validateRequest(req *PORequest) (bool, string) {
	if req.SupplierID == "" {
		return false, "Missing required field: supplier_id"
	}
	if req.Amount == 0 {
		return false, "Missing required field: amount"
	}
	if req.Department == "" {
		return false, "Missing required field: department"
	}
	if len(req.Items) == 0 {
		return false, "Missing required field: items"
	}
	if req.Amount <= 0 {
		return false, "Amount must be a positive number"
	}
	return true, "Valid"
}
