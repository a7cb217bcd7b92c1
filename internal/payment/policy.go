// Package payment maps supplier risk to payment terms and builds payment
// plans from purchase-order totals.
package payment

import (
	"math"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/risk"
)

// PolicyVersion identifies the band/milestone table in effect.
const PolicyVersion = "2025-08-21"

// Milestones per band: the condition that releases the balance payment.
const (
	MilestoneFullUpfront          = "full_upfront"
	MilestoneDeliveryConfirmation = "balance_on_delivery_confirmation"
	MilestoneQualityVerification  = "balance_after_quality_verification"
	MilestoneFullDeliveryAndQC    = "balance_after_full_delivery_and_quality_check"
)

// UpfrontPercent maps a risk score to the upfront payment percentage.
// Piecewise linear within each band:
//
//	LOW       [80,100] -> 100 flat
//	MEDIUM    [60,80)  -> 70..85 over 60..79
//	HIGH      [40,60)  -> 40..60 over 40..59
//	VERY_HIGH [0,40)   -> 0..30  over 0..39
func UpfrontPercent(score float64) float64 {
	s := math.Max(0, math.Min(100, score))
	switch {
	case s >= 80:
		return 100
	case s >= 60:
		return lerp(s, 60, 79, 70, 85)
	case s >= 40:
		return lerp(s, 40, 59, 40, 60)
	default:
		return lerp(s, 0, 39, 0, 30)
	}
}

// MilestoneFor returns the balance-release milestone for a band.
func MilestoneFor(band risk.Band) string {
	switch band {
	case risk.BandLow:
		return MilestoneFullUpfront
	case risk.BandHigh:
		return MilestoneQualityVerification
	case risk.BandVeryHigh:
		return MilestoneFullDeliveryAndQC
	default:
		return MilestoneDeliveryConfirmation
	}
}

// PolicyBand describes one row of the policy table in human-readable form.
type PolicyBand struct {
	Band           risk.Band `json:"band"`
	ScoreRange     string    `json:"score_range"`
	UpfrontPercent string    `json:"upfront_percent"`
	Milestone      string    `json:"milestone"`
}

// PolicyExplanation is the full policy table plus its version.
type PolicyExplanation struct {
	PolicyVersion string       `json:"policy_version"`
	Weights       []string     `json:"score_weights"`
	Bands         []PolicyBand `json:"bands"`
}

// ExplainPolicy returns the policy table in effect, for operators and audits.
func ExplainPolicy() *PolicyExplanation {
	return &PolicyExplanation{
		PolicyVersion: PolicyVersion,
		Weights: []string{
			"35% fulfillment ratio",
			"25% on-time delivery rate",
			"20% quality pass rate",
			"10% invoice acceptance rate",
			"10% payment success rate",
		},
		Bands: []PolicyBand{
			{Band: risk.BandLow, ScoreRange: "80-100", UpfrontPercent: "100", Milestone: MilestoneFullUpfront},
			{Band: risk.BandMedium, ScoreRange: "60-79", UpfrontPercent: "70-85", Milestone: MilestoneDeliveryConfirmation},
			{Band: risk.BandHigh, ScoreRange: "40-59", UpfrontPercent: "40-60", Milestone: MilestoneQualityVerification},
			{Band: risk.BandVeryHigh, ScoreRange: "0-39", UpfrontPercent: "0-30", Milestone: MilestoneFullDeliveryAndQC},
		},
	}
}

func lerp(v, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (v-x0)/(x1-x0)*(y1-y0)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
