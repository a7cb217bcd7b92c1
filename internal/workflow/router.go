package workflow

// Stage identifies one unit of work in the pipeline.
type Stage string

const (
	// StageValidate is the implicit entry stage; it always runs first and
	// is never returned by the router.
	StageValidate          Stage = "validate_request"
	StageCheckSupplier     Stage = "check_supplier"
	StageVerifyBudget      Stage = "verify_budget"
	StageProcessApproval   Stage = "process_approval"
	StageCalculatePayment  Stage = "calculate_payment"
	StageSendNotifications Stage = "send_notifications"
	StageDone              Stage = "done"
)

// NextStage is the pipeline's state machine: a deterministic, total,
// side-effect-free function from state to the next stage to run. Every
// transition is gated by a monotonic "result recorded" flag that is never
// cleared, so no cycles are reachable.
//
// The supplier/budget/approval gates are skipped for a request that failed
// validation; payment and notification still run so the run is accounted
// for and reported. Payment runs exactly once regardless of the decision
// reached so far — payment accounting is computed for audit purposes even
// for rejected POs.
func NextStage(s *State) Stage {
	if !s.requestInvalid {
		if s.SupplierValidation == nil {
			return StageCheckSupplier
		}
		if s.BudgetCheck == nil {
			return StageVerifyBudget
		}
		if s.ApprovalStatus == nil {
			return StageProcessApproval
		}
	}
	if s.PaymentPlan == nil && !s.PaymentAttempted {
		return StageCalculatePayment
	}
	if s.FinalDecision != DecisionUnset && s.Notifications == nil {
		return StageSendNotifications
	}
	return StageDone
}
