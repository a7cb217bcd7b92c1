// Package risk computes supplier risk scores from historical performance.
package risk

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/errors"
)

// Band is the discrete risk category derived from a score.
type Band string

const (
	BandLow      Band = "LOW"
	BandMedium   Band = "MEDIUM"
	BandHigh     Band = "HIGH"
	BandVeryHigh Band = "VERY_HIGH"
)

// Score weights. They sum to 100 so a perfect history scores exactly 100.
const (
	weightFulfillment = 35.0
	weightOnTime      = 25.0
	weightQuality     = 20.0
	weightInvoices    = 10.0
	weightPayments    = 10.0
)

// BandFor maps a score to its band. Thresholds are half-open, evaluated
// high to low: >=80 LOW, >=60 MEDIUM, >=40 HIGH, else VERY_HIGH.
func BandFor(score float64) Band {
	switch {
	case score >= 80:
		return BandLow
	case score >= 60:
		return BandMedium
	case score >= 40:
		return BandHigh
	default:
		return BandVeryHigh
	}
}

// Metrics are the input ratios behind a score, retained for auditability.
type Metrics struct {
	OrderedQty       float64 `json:"ordered_qty"`
	ReceivedQty      float64 `json:"received_qty"`
	Fulfillment      float64 `json:"fulfillment_ratio"`
	OnTime           float64 `json:"ontime_rate"`
	QualityOK        float64 `json:"quality_ok_rate"`
	InvoiceRejection float64 `json:"invoice_rejection_rate"`
	PaymentFailure   float64 `json:"payment_failure_rate"`
}

// Profile is a supplier's computed risk assessment.
type Profile struct {
	SupplierID string  `json:"supplier_id"`
	Score      float64 `json:"risk_score"`
	Band       Band    `json:"risk_band"`
	Metrics    Metrics `json:"metrics"`
}

// HistoryStore supplies the historical aggregates behind the five ratios.
type HistoryStore interface {
	// OrderedQuantity is the total quantity ordered across the supplier's POs.
	OrderedQuantity(ctx context.Context, supplierID string) (float64, error)
	// ReceivedQuantity is the total quantity received against those POs.
	ReceivedQuantity(ctx context.Context, supplierID string) (float64, error)
	// DeliveryCounts returns total goods receipts and how many arrived on time.
	DeliveryCounts(ctx context.Context, supplierID string) (total, onTime int64, err error)
	// QualityCounts returns total goods receipts and how many passed quality.
	QualityCounts(ctx context.Context, supplierID string) (total, ok int64, err error)
	// InvoiceCounts returns total invoices and how many were rejected.
	InvoiceCounts(ctx context.Context, supplierID string) (total, rejected int64, err error)
	// PaymentCounts returns total payments and how many failed.
	PaymentCounts(ctx context.Context, supplierID string) (total, failed int64, err error)
}

// Scorer computes 0-100 risk scores from a history store.
type Scorer struct {
	store HistoryStore
	log   zerolog.Logger
}

// NewScorer creates a scorer over the given history store.
func NewScorer(store HistoryStore, log zerolog.Logger) *Scorer {
	return &Scorer{store: store, log: log}
}

// Score computes the supplier's risk profile.
//
// Ratio policy: a zero denominator means no history, which defaults to 1.0
// (favorable) for fulfillment/on-time/quality and 0.0 (no penalty) for the
// rejection and failure rates. A failed aggregate query degrades to the same
// zero-denominator default instead of aborting the whole computation.
func (s *Scorer) Score(ctx context.Context, supplierID string) (*Profile, error) {
	if supplierID == "" {
		return nil, errors.NotFound("supplier", "(empty)")
	}

	ordered := s.quantity(ctx, supplierID, "ordered", s.store.OrderedQuantity)
	received := s.quantity(ctx, supplierID, "received", s.store.ReceivedQuantity)
	fulfillment := 1.0
	if ordered > 0 {
		fulfillment = clamp(received/ordered, 0, 1)
	}

	onTimeRate := s.favorableRate(ctx, supplierID, "on_time", s.store.DeliveryCounts)
	qualityRate := s.favorableRate(ctx, supplierID, "quality", s.store.QualityCounts)
	invoiceRejRate := s.penaltyRate(ctx, supplierID, "invoice_rejection", s.store.InvoiceCounts)
	payFailRate := s.penaltyRate(ctx, supplierID, "payment_failure", s.store.PaymentCounts)

	score := weightFulfillment*fulfillment +
		weightOnTime*onTimeRate +
		weightQuality*qualityRate +
		weightInvoices*(1-invoiceRejRate) +
		weightPayments*(1-payFailRate)

	return &Profile{
		SupplierID: supplierID,
		Score:      round2(score),
		Band:       BandFor(score),
		Metrics: Metrics{
			OrderedQty:       ordered,
			ReceivedQty:      received,
			Fulfillment:      round3(fulfillment),
			OnTime:           round3(onTimeRate),
			QualityOK:        round3(qualityRate),
			InvoiceRejection: round3(invoiceRejRate),
			PaymentFailure:   round3(payFailRate),
		},
	}, nil
}

type quantityFn func(ctx context.Context, supplierID string) (float64, error)
type countsFn func(ctx context.Context, supplierID string) (int64, int64, error)

func (s *Scorer) quantity(ctx context.Context, supplierID, name string, fn quantityFn) float64 {
	qty, err := fn(ctx, supplierID)
	if err != nil {
		s.log.Warn().Err(err).
			Str("supplier_id", supplierID).
			Str("aggregate", name).
			Msg("Risk aggregate query failed; using zero-history default")
		return 0
	}
	return qty
}

// favorableRate computes hits/total, defaulting to 1.0 with no history.
func (s *Scorer) favorableRate(ctx context.Context, supplierID, name string, fn countsFn) float64 {
	total, hits, err := fn(ctx, supplierID)
	if err != nil {
		s.log.Warn().Err(err).
			Str("supplier_id", supplierID).
			Str("aggregate", name).
			Msg("Risk aggregate query failed; using zero-history default")
		return 1
	}
	if total == 0 {
		return 1
	}
	return clamp(float64(hits)/float64(total), 0, 1)
}

// penaltyRate computes hits/total, defaulting to 0.0 with no history.
func (s *Scorer) penaltyRate(ctx context.Context, supplierID, name string, fn countsFn) float64 {
	total, hits, err := fn(ctx, supplierID)
	if err != nil {
		s.log.Warn().Err(err).
			Str("supplier_id", supplierID).
			Str("aggregate", name).
			Msg("Risk aggregate query failed; using zero-history default")
		return 0
	}
	if total == 0 {
		return 0
	}
	return clamp(float64(hits)/float64(total), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
