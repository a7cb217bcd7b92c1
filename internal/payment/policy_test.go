package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/risk"
)

func TestUpfrontPercentBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{100, 100},
		{80, 100},
		{79, 85},
		{60, 70},
		{59, 60},
		{40, 40},
		{39, 30},
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, UpfrontPercent(tt.score), 1e-9, "score %.2f", tt.score)
	}
}

func TestUpfrontPercentInteriorPoints(t *testing.T) {
	// Midpoints of each linear segment.
	assert.InDelta(t, 77.5, UpfrontPercent(69.5), 1e-9)
	assert.InDelta(t, 50, UpfrontPercent(49.5), 1e-9)
	assert.InDelta(t, 15, UpfrontPercent(19.5), 1e-9)
}

func TestUpfrontPercentMonotonic(t *testing.T) {
	prev := -1.0
	for s := 0.0; s <= 100; s += 0.25 {
		pct := UpfrontPercent(s)
		assert.GreaterOrEqual(t, pct, prev, "score %.2f", s)
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
		prev = pct
	}
}

func TestUpfrontPercentClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 0.0, UpfrontPercent(-5))
	assert.Equal(t, 100.0, UpfrontPercent(130))
}

func TestMilestoneFor(t *testing.T) {
	assert.Equal(t, MilestoneFullUpfront, MilestoneFor(risk.BandLow))
	assert.Equal(t, MilestoneDeliveryConfirmation, MilestoneFor(risk.BandMedium))
	assert.Equal(t, MilestoneQualityVerification, MilestoneFor(risk.BandHigh))
	assert.Equal(t, MilestoneFullDeliveryAndQC, MilestoneFor(risk.BandVeryHigh))
}

func TestExplainPolicyMatchesImplementation(t *testing.T) {
	explanation := ExplainPolicy()
	assert.Equal(t, PolicyVersion, explanation.PolicyVersion)
	assert.Len(t, explanation.Bands, 4)
	for _, row := range explanation.Bands {
		assert.Equal(t, MilestoneFor(row.Band), row.Milestone, "band %s", row.Band)
	}
}
