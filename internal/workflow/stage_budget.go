package workflow

import (
	"context"
	"fmt"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
)

// verifyBudget checks departmental budget availability and, when the check
// passes, reserves the amount. Reservation is best-effort: a failed
// reservation never blocks the run.
func (o *Orchestrator) verifyBudget(ctx context.Context, state *State) {
	req := state.Request

	check, err := o.budgets.CheckAvailability(ctx, req.Department, req.Amount)
	if err != nil {
		msg := o.stageFailure(state, "budget verification", err)
		state.BudgetCheck = client.Result{"error": true, "message": msg, "checked_at": timestamp()}
		return
	}
	check["checked_at"] = timestamp()
	state.BudgetCheck = check

	if check.IsError() {
		state.SetDecision(DecisionError, "Budget check error: "+check.Message())
		return
	}
	if !check.Bool("available") {
		state.SetDecision(DecisionRejected, fmt.Sprintf("Insufficient budget: requested %s, available %s",
			formatCurrency(req.Amount),
			formatCurrency(check.Float("amount_available"))))
		return
	}

	reservation, err := o.budgets.Reserve(ctx, req.Department, req.Amount, state.POID)
	if err != nil {
		o.log.Warn().Err(err).Str("po_id", state.POID).Msg("budget reservation failed")
	} else if !reservation.IsError() && reservation.Bool("reserved") {
		check["reservation"] = reservation
		state.AppendMessage(fmt.Sprintf("Budget reserved: %s", formatCurrency(req.Amount)))
	}
}
