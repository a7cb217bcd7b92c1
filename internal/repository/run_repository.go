package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/database"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/workflow"
)

// WorkflowRunRepository persists completed workflow runs for audit.
type WorkflowRunRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewWorkflowRunRepository creates a new WorkflowRunRepository.
func NewWorkflowRunRepository(db *database.DB, log zerolog.Logger) *WorkflowRunRepository {
	return &WorkflowRunRepository{db: db, log: log}
}

// RecordRun writes one completed run to the audit table. Persistence is
// best-effort: failures are logged and the run's outcome stands.
func (r *WorkflowRunRepository) RecordRun(ctx context.Context, state *workflow.State) {
	planJSON, err := json.Marshal(state.PaymentPlan)
	if err != nil {
		r.log.Warn().Err(err).Str("po_id", state.POID).Msg("workflow audit: plan marshal failed")
		planJSON = []byte("null")
	}
	errorsJSON, err := json.Marshal(state.Errors)
	if err != nil {
		errorsJSON = []byte("[]")
	}

	query := `
		INSERT INTO workflow_runs (
			id, po_id, supplier_id, department, amount,
			final_decision, decision_reason, payment_plan, errors,
			processing_seconds, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`

	_, err = r.db.Exec(ctx, query,
		uuid.New(),
		state.POID,
		state.Request.SupplierID,
		state.Request.Department,
		state.Request.Amount,
		string(state.FinalDecision),
		state.DecisionReason,
		planJSON,
		errorsJSON,
		state.ProcessingTime,
	)
	if err != nil {
		r.log.Warn().Err(err).Str("po_id", state.POID).Msg("workflow audit: insert failed")
	}
}
