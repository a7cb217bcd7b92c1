package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/errors"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/payment"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/risk"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/workflow"
)

// RunRecorder persists completed workflow runs. May be nil.
type RunRecorder interface {
	RecordRun(ctx context.Context, state *workflow.State)
}

// HTTPHandler handles HTTP requests
type HTTPHandler struct {
	orchestrator *workflow.Orchestrator
	scorer       *risk.Scorer
	planner      *payment.Planner
	runs         RunRecorder
	log          zerolog.Logger
}

// NewHTTPHandler creates a new HTTP handler. runs may be nil.
func NewHTTPHandler(orchestrator *workflow.Orchestrator, scorer *risk.Scorer, planner *payment.Planner, runs RunRecorder, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		orchestrator: orchestrator,
		scorer:       scorer,
		planner:      planner,
		runs:         runs,
		log:          log,
	}
}

// ProcessPurchaseOrder handles PO submission HTTP requests
func (h *HTTPHandler) ProcessPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req workflow.PORequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.orchestrator.Run(r.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("workflow run aborted")
	}
	if h.runs != nil && state != nil {
		h.runs.RecordRun(r.Context(), state)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(state)
}

// GetSupplierRisk handles supplier risk profile HTTP requests
func (h *HTTPHandler) GetSupplierRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	supplierID := r.URL.Query().Get("supplier_id")
	if supplierID == "" {
		http.Error(w, "supplier_id is required", http.StatusBadRequest)
		return
	}

	profile, err := h.scorer.Score(r.Context(), supplierID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// GetPaymentPlan handles payment plan HTTP requests. The plan is computed
// from po_id plus supplier_id, or from the supplier's latest PO when only
// supplier_id is given.
func (h *HTTPHandler) GetPaymentPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	poID := r.URL.Query().Get("po_id")
	supplierID := r.URL.Query().Get("supplier_id")
	if supplierID == "" {
		http.Error(w, "supplier_id is required", http.StatusBadRequest)
		return
	}

	var plan *payment.Plan
	var err error
	if poID != "" {
		plan, err = h.planner.RecommendPlan(r.Context(), poID, supplierID)
	} else {
		plan, err = h.planner.RecommendPlanForSupplier(r.Context(), supplierID)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plan)
}

// GetPaymentPolicy handles payment policy HTTP requests
func (h *HTTPHandler) GetPaymentPolicy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment.ExplainPolicy())
}

// Health handles health check HTTP requests
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnresolvable:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeConflict:
		status = http.StatusConflict
	case errors.ErrCodeUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetCode(err)),
	})
}
