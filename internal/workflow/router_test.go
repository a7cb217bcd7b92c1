package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/payment"
)

func validTestRequest() *PORequest {
	return &PORequest{
		SupplierID: "SUP001",
		Amount:     10000,
		Department: "IT",
		Items:      []POItem{{Description: "Laptops", Quantity: 10, UnitPrice: 1000}},
	}
}

func TestNextStageFullSequence(t *testing.T) {
	s := NewState(validTestRequest())

	assert.Equal(t, StageCheckSupplier, NextStage(s))
	s.SupplierValidation = client.Result{"valid": true}

	assert.Equal(t, StageVerifyBudget, NextStage(s))
	s.BudgetCheck = client.Result{"available": true}

	assert.Equal(t, StageProcessApproval, NextStage(s))
	s.ApprovalStatus = client.Result{"auto_approve": true}
	s.SetDecision(DecisionApproved, "auto")

	assert.Equal(t, StageCalculatePayment, NextStage(s))
	s.PaymentAttempted = true
	s.PaymentPlan = &payment.Plan{}

	assert.Equal(t, StageSendNotifications, NextStage(s))
	s.Notifications = []client.Result{}

	assert.Equal(t, StageDone, NextStage(s))
}

func TestNextStageIsDeterministic(t *testing.T) {
	s := NewState(validTestRequest())
	s.SupplierValidation = client.Result{"valid": true}

	first := NextStage(s)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, NextStage(s))
	}
}

func TestNextStageInvalidRequestSkipsChecks(t *testing.T) {
	s := NewState(&PORequest{})
	s.requestInvalid = true
	s.SetDecision(DecisionRejected, "Validation failed: Missing required field: supplier_id")

	// Supplier, budget and approval are skipped; payment still runs once.
	assert.Equal(t, StageCalculatePayment, NextStage(s))
	s.PaymentAttempted = true

	assert.Equal(t, StageSendNotifications, NextStage(s))
	s.Notifications = []client.Result{}

	assert.Equal(t, StageDone, NextStage(s))
}

func TestNextStagePaymentRunsAtMostOnce(t *testing.T) {
	// A failed payment attempt leaves no plan; the latch must prevent a loop.
	s := NewState(validTestRequest())
	s.SupplierValidation = client.Result{"valid": true}
	s.BudgetCheck = client.Result{"available": true}
	s.ApprovalStatus = client.Result{"auto_approve": true}
	s.SetDecision(DecisionError, "Payment plan error: database down")
	s.PaymentAttempted = true

	assert.Equal(t, StageSendNotifications, NextStage(s))
}

func TestNextStageNoDecisionMeansNoNotifications(t *testing.T) {
	s := NewState(validTestRequest())
	s.SupplierValidation = client.Result{"valid": true}
	s.BudgetCheck = client.Result{"available": true}
	s.ApprovalStatus = client.Result{}
	s.PaymentAttempted = true
	s.PaymentPlan = &payment.Plan{}

	assert.Equal(t, StageDone, NextStage(s))
}

func TestSetDecisionSeverityGuard(t *testing.T) {
	s := NewState(validTestRequest())

	s.SetDecision(DecisionRejected, "supplier rejected")
	s.SetDecision(DecisionApproved, "auto-approved")
	assert.Equal(t, DecisionRejected, s.FinalDecision)
	assert.Equal(t, "supplier rejected", s.DecisionReason)

	// Equal or higher severity still overwrites.
	s.SetDecision(DecisionError, "payment failed")
	assert.Equal(t, DecisionError, s.FinalDecision)

	s.SetDecision(DecisionPendingApproval, "awaiting")
	assert.Equal(t, DecisionError, s.FinalDecision)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PORequest)
		wantOK  bool
		wantMsg string
	}{
		{name: "valid", mutate: func(*PORequest) {}, wantOK: true, wantMsg: "Valid"},
		{name: "missing supplier", mutate: func(r *PORequest) { r.SupplierID = "" }, wantMsg: "Missing required field: supplier_id"},
		{name: "missing amount", mutate: func(r *PORequest) { r.Amount = 0 }, wantMsg: "Missing required field: amount"},
		{name: "missing department", mutate: func(r *PORequest) { r.Department = "" }, wantMsg: "Missing required field: department"},
		{name: "missing items", mutate: func(r *PORequest) { r.Items = nil }, wantMsg: "Missing required field: items"},
		{name: "negative amount", mutate: func(r *PORequest) { r.Amount = -10 }, wantMsg: "Amount must be a positive number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTestRequest()
			tt.mutate(req)
			ok, msg := validateRequest(req)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
