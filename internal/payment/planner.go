package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/errors"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/risk"
)

// requestCodeFloor: numeric references above this are timestamp-style request
// codes (yyyymmddHHMMSS), not stable purchase-order keys.
const requestCodeFloor = 10_000_000

// staticPOMap resolves a request code (plus supplier) to the stable demo
// purchase-order key. Versioned with the policy table.
var staticPOMap = map[string]int64{
	"SUP001": 1,
	"SUP002": 2,
	"SUP003": 3,
	"SUP999": 4,
}

// POHeader is the purchase-order header the planner needs.
type POHeader struct {
	POID          int64
	SupplierID    string
	Currency      string
	ExchangeRate  float64
	TaxAmount     float64
	FreightAmount float64
}

// POStore resolves purchase orders by stable key.
type POStore interface {
	// GetHeader returns the PO header, or a NOT_FOUND error.
	GetHeader(ctx context.Context, poID int64) (*POHeader, error)
	// LineTotal returns the sum of quantity*unit_price across the PO's items.
	LineTotal(ctx context.Context, poID int64) (float64, error)
	// LatestPOID returns the supplier's most recent PO key, or NOT_FOUND.
	LatestPOID(ctx context.Context, supplierID string) (int64, error)
}

// RiskScorer computes a supplier risk profile.
type RiskScorer interface {
	Score(ctx context.Context, supplierID string) (*risk.Profile, error)
}

// ProfileCache is an optional read-through cache for risk profiles.
type ProfileCache interface {
	Get(ctx context.Context, supplierID string) (*risk.Profile, bool)
	Set(ctx context.Context, supplierID string, profile *risk.Profile)
}

// Totals breaks down the PO's monetary total.
type Totals struct {
	LineTotal     float64 `json:"line_total"`
	TaxAmount     float64 `json:"tax_amount"`
	FreightAmount float64 `json:"freight_amount"`
	TotalPOAmount float64 `json:"total_po_amount"`
	TotalInBase   float64 `json:"total_in_base"`
}

// PolicyTerms are the risk-derived payment terms.
type PolicyTerms struct {
	Band           risk.Band `json:"band"`
	UpfrontPercent float64   `json:"upfront_percent"`
	BalancePercent float64   `json:"balance_percent"`
	Milestone      string    `json:"milestone"`
	PolicyVersion  string    `json:"policy_version"`
}

// Amounts split the total into upfront and balance.
type Amounts struct {
	UpfrontAmount float64 `json:"upfront_amount"`
	BalanceAmount float64 `json:"balance_amount"`
}

// Plan is the computed payment plan for one purchase order.
type Plan struct {
	POID         int64         `json:"po_id"`
	SupplierID   string        `json:"supplier_id"`
	Currency     string        `json:"currency"`
	ExchangeRate float64       `json:"exchange_rate"`
	Totals       Totals        `json:"totals"`
	Risk         *risk.Profile `json:"risk"`
	Policy       PolicyTerms   `json:"policy"`
	Amounts      Amounts       `json:"amounts"`
}

// Planner computes payment plans from stored POs and supplier risk.
type Planner struct {
	store  POStore
	scorer RiskScorer
	cache  ProfileCache
	log    zerolog.Logger
}

// NewPlanner creates a planner. cache may be nil.
func NewPlanner(store POStore, scorer RiskScorer, cache ProfileCache, log zerolog.Logger) *Planner {
	return &Planner{store: store, scorer: scorer, cache: cache, log: log}
}

// ResolveReference maps a PO reference to its stable key. A small integer is
// used as-is; a request code ("PO-..." or a timestamp-style number) resolves
// through the static supplier map. An unmappable reference is UNRESOLVABLE,
// distinct from a stable key that has no stored PO (NOT_FOUND).
func (p *Planner) ResolveReference(poRef, supplierID string) (int64, error) {
	ref := strings.TrimSpace(poRef)
	if ref == "" {
		return 0, errors.Unresolvable(poRef)
	}

	if n, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if n <= requestCodeFloor {
			return n, nil
		}
		// Timestamp-style number: fall through to the static mapping.
	} else if !looksLikeRequestCode(ref) {
		return 0, errors.Unresolvable(poRef)
	}

	sid := strings.ToUpper(strings.TrimSpace(supplierID))
	if poID, ok := staticPOMap[sid]; ok {
		return poID, nil
	}
	return 0, errors.Unresolvable(poRef)
}

func looksLikeRequestCode(ref string) bool {
	return strings.HasPrefix(strings.ToUpper(ref), "PO-")
}

// RecommendPlan resolves the PO reference and builds its payment plan.
func (p *Planner) RecommendPlan(ctx context.Context, poRef, supplierID string) (*Plan, error) {
	poID, err := p.ResolveReference(poRef, supplierID)
	if err != nil {
		return nil, err
	}
	return p.planFor(ctx, poID)
}

// RecommendPlanForSupplier builds a plan from the supplier's most recent PO,
// for callers that have no PO reference at hand.
func (p *Planner) RecommendPlanForSupplier(ctx context.Context, supplierID string) (*Plan, error) {
	sid := strings.TrimSpace(supplierID)
	if sid == "" {
		return nil, errors.InvalidInput("supplier_id", "supplier_id is required")
	}
	poID, err := p.store.LatestPOID(ctx, sid)
	if err != nil {
		return nil, err
	}
	return p.planFor(ctx, poID)
}

func (p *Planner) planFor(ctx context.Context, poID int64) (*Plan, error) {
	header, err := p.store.GetHeader(ctx, poID)
	if err != nil {
		return nil, err
	}

	lineTotal, err := p.store.LineTotal(ctx, poID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNotFound,
			fmt.Sprintf("line items for PO %d", poID))
	}

	exchangeRate := header.ExchangeRate
	if exchangeRate == 0 {
		exchangeRate = 1
	}

	totalBase := lineTotal + header.TaxAmount + header.FreightAmount
	totalInBase := round2(totalBase * exchangeRate)

	profile, err := p.riskProfile(ctx, header.SupplierID)
	if err != nil {
		return nil, err
	}

	upfrontPct := UpfrontPercent(profile.Score)
	upfront := round2(totalInBase * upfrontPct / 100)
	// Balance is derived, not independently rounded, so the split always
	// reconstructs the total exactly.
	balance := totalInBase - upfront

	plan := &Plan{
		POID:         poID,
		SupplierID:   header.SupplierID,
		Currency:     header.Currency,
		ExchangeRate: exchangeRate,
		Totals: Totals{
			LineTotal:     round2(lineTotal),
			TaxAmount:     round2(header.TaxAmount),
			FreightAmount: round2(header.FreightAmount),
			TotalPOAmount: round2(totalBase),
			TotalInBase:   totalInBase,
		},
		Risk: profile,
		Policy: PolicyTerms{
			Band:           profile.Band,
			UpfrontPercent: round2(upfrontPct),
			BalancePercent: round2(100 - upfrontPct),
			Milestone:      MilestoneFor(profile.Band),
			PolicyVersion:  PolicyVersion,
		},
		Amounts: Amounts{
			UpfrontAmount: upfront,
			BalanceAmount: balance,
		},
	}

	p.log.Debug().
		Int64("po_id", poID).
		Str("supplier_id", header.SupplierID).
		Str("band", string(profile.Band)).
		Float64("upfront_percent", plan.Policy.UpfrontPercent).
		Msg("Payment plan computed")

	return plan, nil
}

func (p *Planner) riskProfile(ctx context.Context, supplierID string) (*risk.Profile, error) {
	if p.cache != nil {
		if profile, ok := p.cache.Get(ctx, supplierID); ok {
			return profile, nil
		}
	}
	profile, err := p.scorer.Score(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		p.cache.Set(ctx, supplierID, profile)
	}
	return profile, nil
}
