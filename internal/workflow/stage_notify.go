package workflow

import (
	"context"
	"fmt"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
)

// sendNotifications reports the outcome to the requester and the procurement
// channel, then emits a workflow event. Notification failures are recorded
// but never change the decision; the stage always records a (possibly empty)
// notification list so it runs exactly once.
func (o *Orchestrator) sendNotifications(ctx context.Context, state *State) {
	req := state.Request
	sent := make([]client.Result, 0, 2)
	defer func() { state.Notifications = sent }()

	recipient := req.RequestedBy
	if recipient == "" {
		recipient = "requester@company.com"
	}

	subject := fmt.Sprintf("PO %s - %s", state.POID, state.FinalDecision)
	body := fmt.Sprintf("PO Status: %s\nAmount: %s\nReason: %s",
		state.FinalDecision, formatCurrency(req.Amount), state.DecisionReason)

	email, err := o.notifier.SendEmail(ctx, recipient, subject, body, state.POID)
	if err != nil {
		state.AppendError(fmt.Sprintf("Email notification failed: %v", err))
		o.log.Warn().Err(err).Str("po_id", state.POID).Msg("email notification failed")
	} else {
		sent = append(sent, email)
	}

	chatMsg := fmt.Sprintf("PO %s (%s) - %s", state.POID, formatCurrency(req.Amount), state.FinalDecision)
	chat, err := o.notifier.SendChat(ctx, procurementChannel, chatMsg, state.POID)
	if err != nil {
		state.AppendError(fmt.Sprintf("Chat notification failed: %v", err))
		o.log.Warn().Err(err).Str("po_id", state.POID).Msg("chat notification failed")
	} else {
		sent = append(sent, chat)
	}

	if o.events != nil {
		o.events.PublishWorkflowEvent(ctx, &client.WorkflowEvent{
			EventType:  eventTypeFor(state.FinalDecision),
			POID:       state.POID,
			SupplierID: req.SupplierID,
			Department: req.Department,
			Decision:   string(state.FinalDecision),
			Reason:     state.DecisionReason,
		})
	}

	state.AppendMessage(fmt.Sprintf("Notifications sent for PO %s", state.POID))
}

func eventTypeFor(d Decision) string {
	switch d {
	case DecisionApproved:
		return "approved"
	case DecisionRejected:
		return "rejected"
	case DecisionPendingApproval:
		return "pending_approval"
	case DecisionError:
		return "failed"
	default:
		return "completed"
	}
}
