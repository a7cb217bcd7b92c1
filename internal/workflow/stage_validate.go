package workflow

import (
	"context"
	"fmt"
)

// validatePORequest is the entry stage: it assigns the PO id, checks the
// required fields and, for valid requests, attaches an optional advisory
// annotation from the analyst.
func (o *Orchestrator) validatePORequest(ctx context.Context, state *State) {
	if state.POID == "" {
		state.POID = generatePOID()
	}
	state.Request.POID = state.POID

	ok, msg := validateRequest(state.Request)
	if !ok {
		state.requestInvalid = true
		reason := "Validation failed: " + msg
		state.SetDecision(DecisionRejected, reason)
		state.AppendError(reason)
		o.log.Warn().Str("po_id", state.POID).Msg(reason)
		return
	}

	state.AppendMessage(fmt.Sprintf("PO %s validated successfully. Amount: %s",
		state.POID, formatCurrency(state.Request.Amount)))

	if o.analyst != nil {
		analysis, err := o.analyst.Analyze(ctx, state.POID, state.Request.SupplierID,
			state.Request.Amount, state.Request.Department)
		if err != nil {
			o.log.Warn().Err(err).Str("po_id", state.POID).Msg("request analysis unavailable")
		} else if analysis != "" {
			state.AppendMessage("Analysis: " + analysis)
		}
	}
}
