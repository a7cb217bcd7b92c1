package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
)

// checkSupplier validates the supplier and its capacity for the order value.
// Both checks run so a rejection reports every failing check, not just the
// first. The stage always records a supplier_validation block, even when the
// collaborator is unreachable, so the run can make progress.
func (o *Orchestrator) checkSupplier(ctx context.Context, state *State) {
	req := state.Request
	block := client.Result{"checked_at": timestamp()}
	defer func() { state.SupplierValidation = block }()

	validation, err := o.suppliers.ValidateSupplier(ctx, req.SupplierID)
	if err != nil {
		msg := o.stageFailure(state, "supplier validation", err)
		block["validation"] = client.ErrorResult(msg)
		return
	}
	block["validation"] = validation

	capacity, err := o.suppliers.CheckCapacity(ctx, req.SupplierID, req.Amount)
	if err != nil {
		msg := o.stageFailure(state, "supplier validation", err)
		block["capacity"] = client.ErrorResult(msg)
		return
	}
	block["capacity"] = capacity

	if validation.IsError() {
		state.SetDecision(DecisionRejected, "Supplier validation error: "+validation.Message())
		return
	}
	if capacity.IsError() {
		state.SetDecision(DecisionRejected, "Supplier capacity check error: "+capacity.Message())
		return
	}

	valid := validation.Bool("valid")
	capacityOK := capacity.Bool("capacity_ok")
	if !valid || !capacityOK {
		var reasons []string
		if !valid {
			reasons = append(reasons, validation.Message())
		}
		if !capacityOK {
			reasons = append(reasons, fmt.Sprintf("Order exceeds capacity: %s > %s",
				formatCurrency(req.Amount),
				formatCurrency(capacity.Float("max_capacity"))))
		}
		state.SetDecision(DecisionRejected, "Supplier validation failed: "+strings.Join(reasons, "; "))
		return
	}

	state.AppendMessage(fmt.Sprintf("Supplier %s validated successfully", req.SupplierID))
}
