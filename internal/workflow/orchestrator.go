package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/client"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/metrics"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/payment"
)

// SupplierService validates suppliers and their capacity.
type SupplierService interface {
	ValidateSupplier(ctx context.Context, supplierID string) (client.Result, error)
	CheckCapacity(ctx context.Context, supplierID string, orderValue float64) (client.Result, error)
}

// BudgetService checks and reserves department budget.
type BudgetService interface {
	CheckAvailability(ctx context.Context, department string, amount float64) (client.Result, error)
	Reserve(ctx context.Context, department string, amount float64, poID string) (client.Result, error)
	Release(ctx context.Context, department string, amount float64, poID string) (client.Result, error)
}

// ApprovalService resolves approval requirements and dispatches requests.
type ApprovalService interface {
	RequiredApprovers(ctx context.Context, amount float64, department string) (client.Result, error)
	SendApprovalRequest(ctx context.Context, poID string, approvers []string, details any) (client.Result, error)
}

// NotificationService delivers workflow outcome notifications.
type NotificationService interface {
	SendEmail(ctx context.Context, recipient, subject, body, poID string) (client.Result, error)
	SendChat(ctx context.Context, channel, message, poID string) (client.Result, error)
}

// Analyst produces an optional advisory annotation for a validated request.
type Analyst interface {
	Analyze(ctx context.Context, poID, supplierID string, amount float64, department string) (string, error)
}

// Planner computes the payment plan for a PO reference.
type Planner interface {
	RecommendPlan(ctx context.Context, poRef, supplierID string) (*payment.Plan, error)
}

// EventPublisher emits workflow lifecycle events (best-effort).
type EventPublisher interface {
	PublishWorkflowEvent(ctx context.Context, event *client.WorkflowEvent)
}

// procurementChannel receives the internal summary notification.
const procurementChannel = "#procurement"

// maxTransitions bounds the router loop. The router's monotonic gates
// guarantee termination in at most six transitions; exceeding the bound
// means a routing or state-merge invariant was violated.
const maxTransitions = 16

// Orchestrator drives one PO submission through the stage pipeline.
type Orchestrator struct {
	suppliers SupplierService
	budgets   BudgetService
	approvals ApprovalService
	notifier  NotificationService
	analyst   Analyst
	planner   Planner
	events    EventPublisher
	log       zerolog.Logger
}

// NewOrchestrator creates an orchestrator. analyst and events may be nil.
func NewOrchestrator(
	suppliers SupplierService,
	budgets BudgetService,
	approvals ApprovalService,
	notifier NotificationService,
	analyst Analyst,
	planner Planner,
	events EventPublisher,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		suppliers: suppliers,
		budgets:   budgets,
		approvals: approvals,
		notifier:  notifier,
		analyst:   analyst,
		planner:   planner,
		events:    events,
		log:       log,
	}
}

// Run processes one purchase order to completion. Stage-level failures are
// encoded in the returned state; Run itself only fails when the routing or
// state-merge logic violates an invariant, in which case the partial state
// is returned alongside the fault.
func (o *Orchestrator) Run(ctx context.Context, req *PORequest) (state *State, err error) {
	start := time.Now()
	state = NewState(req)

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("Workflow execution failed: %v", r)
			o.log.Error().Str("po_id", state.POID).Msg(msg)
			state.SetDecision(DecisionError, msg)
			state.AppendError(msg)
			state.ProcessingTime = time.Since(start).Seconds()
			err = fmt.Errorf("workflow execution failed: %v", r)
		}
	}()

	o.log.Info().
		Str("supplier_id", req.SupplierID).
		Float64("amount", req.Amount).
		Msg("Starting PO processing")

	o.validatePORequest(ctx, state)

	for i := 0; ; i++ {
		stage := NextStage(state)
		if stage == StageDone {
			break
		}
		if i >= maxTransitions {
			panic(fmt.Sprintf("router did not terminate; stuck at stage %s", stage))
		}
		o.runStage(ctx, stage, state)
	}

	state.ProcessingTime = time.Since(start).Seconds()
	metrics.Decisions.WithLabelValues(string(state.FinalDecision)).Inc()

	o.log.Info().
		Str("po_id", state.POID).
		Str("decision", string(state.FinalDecision)).
		Float64("processing_seconds", state.ProcessingTime).
		Msg("PO processing completed")

	return state, nil
}

func (o *Orchestrator) runStage(ctx context.Context, stage Stage, state *State) {
	start := time.Now()

	switch stage {
	case StageCheckSupplier:
		o.checkSupplier(ctx, state)
	case StageVerifyBudget:
		o.verifyBudget(ctx, state)
	case StageProcessApproval:
		o.processApproval(ctx, state)
	case StageCalculatePayment:
		o.calculatePayment(ctx, state)
	case StageSendNotifications:
		o.sendNotifications(ctx, state)
	default:
		panic(fmt.Sprintf("router returned unknown stage %q", stage))
	}

	metrics.StageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
}

// stageFailure converts an unexpected stage-local failure into an ERROR
// decision plus an error-log entry, so faults never unwind past the stage.
func (o *Orchestrator) stageFailure(state *State, what string, err error) string {
	msg := fmt.Sprintf("Error during %s: %v", what, err)
	state.AppendError(msg)
	state.SetDecision(DecisionError, msg)
	metrics.CollaboratorErrors.WithLabelValues(what).Inc()
	o.log.Error().Err(err).Str("po_id", state.POID).Msg(msg)
	return msg
}

var currencyPrinter = message.NewPrinter(language.English)

// formatCurrency renders an amount as a grouped dollar string.
func formatCurrency(amount float64) string {
	return currencyPrinter.Sprintf("$%.2f", amount)
}

// generatePOID assigns a timestamp-based request code.
func generatePOID() string {
	return "PO-" + time.Now().Format("20060102150405")
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}
