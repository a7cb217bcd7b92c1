package workflow

import (
	"context"
	"fmt"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/metrics"
)

// calculatePayment computes the risk-based payment plan. The stage runs at
// most once per submission: the attempt latch is set regardless of outcome.
func (o *Orchestrator) calculatePayment(ctx context.Context, state *State) {
	defer func() { state.PaymentAttempted = true }()

	poRef := state.POID
	if poRef == "" {
		poRef = state.Request.POID
	}

	if poRef == "" {
		reason := "Payment plan error: request has no po_id"
		state.SetDecision(DecisionError, reason)
		state.AppendError(reason)
		metrics.PlanRequests.WithLabelValues("error").Inc()
		return
	}
	if state.Request.SupplierID == "" {
		reason := "Payment plan error: request has no supplier_id"
		state.SetDecision(DecisionError, reason)
		state.AppendError(reason)
		metrics.PlanRequests.WithLabelValues("error").Inc()
		return
	}

	plan, err := o.planner.RecommendPlan(ctx, poRef, state.Request.SupplierID)
	if err != nil {
		reason := "Payment plan error: " + err.Error()
		state.SetDecision(DecisionError, reason)
		state.AppendError(reason)
		metrics.PlanRequests.WithLabelValues("error").Inc()
		o.log.Error().Err(err).Str("po_id", state.POID).Msg("payment plan computation failed")
		return
	}

	state.PaymentPlan = plan
	metrics.PlanRequests.WithLabelValues("ok").Inc()
	state.AppendMessage(fmt.Sprintf("Payment plan: %.2f%% upfront (%s), balance %s [%s risk]",
		plan.Policy.UpfrontPercent,
		formatCurrency(plan.Amounts.UpfrontAmount),
		formatCurrency(plan.Amounts.BalanceAmount),
		plan.Risk.Band))
}
