package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
)

// processApproval resolves the approval requirements for the amount and
// either auto-approves or routes the PO to the required approvers.
func (o *Orchestrator) processApproval(ctx context.Context, state *State) {
	req := state.Request

	approvers, err := o.approvals.RequiredApprovers(ctx, req.Amount, req.Department)
	if err != nil {
		msg := o.stageFailure(state, "approval processing", err)
		state.ApprovalStatus = client.Result{"error": true, "message": msg, "processed_at": timestamp()}
		return
	}
	approvers["processed_at"] = timestamp()
	state.ApprovalStatus = approvers

	if approvers.IsError() {
		state.SetDecision(DecisionError, "Approval check error: "+approvers.Message())
		return
	}

	if approvers.Bool("auto_approve") {
		approvers["auto_approved"] = true
		state.SetDecision(DecisionApproved, fmt.Sprintf("Auto-approved: amount %s below threshold %s",
			formatCurrency(req.Amount), formatCurrency(approvers.Float("threshold"))))
		o.log.Info().Str("po_id", state.POID).Msg("PO auto-approved")
		return
	}

	roles := approvers.Strings("approvers_required")
	request, err := o.approvals.SendApprovalRequest(ctx, state.POID, roles, req)
	if err != nil {
		o.log.Warn().Err(err).Str("po_id", state.POID).Msg("approval request dispatch failed")
	} else if !request.IsError() {
		approvers["request_details"] = request
		state.AppendMessage("Approval requests sent to: " + strings.Join(roles, ", "))
	}

	state.SetDecision(DecisionPendingApproval, "Awaiting approval from: "+strings.Join(roles, ", "))
}
