package payment

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/errors"
	"github.com/Hiteshankodia/PO-AutomationAgent-MCPServers/internal/risk"
)

type fakePOStore struct {
	headers  map[int64]*POHeader
	lines    map[int64]float64
	latest   map[string]int64
	lineErrs map[int64]error
}

func (s *fakePOStore) GetHeader(_ context.Context, poID int64) (*POHeader, error) {
	h, ok := s.headers[poID]
	if !ok {
		return nil, errors.NotFound("purchase order", "x")
	}
	return h, nil
}

func (s *fakePOStore) LineTotal(_ context.Context, poID int64) (float64, error) {
	if err := s.lineErrs[poID]; err != nil {
		return 0, err
	}
	return s.lines[poID], nil
}

func (s *fakePOStore) LatestPOID(_ context.Context, supplierID string) (int64, error) {
	id, ok := s.latest[supplierID]
	if !ok {
		return 0, errors.NotFound("purchase orders for supplier", supplierID)
	}
	return id, nil
}

type fakeScorer struct {
	score float64
	calls int
}

func (s *fakeScorer) Score(_ context.Context, supplierID string) (*risk.Profile, error) {
	s.calls++
	return &risk.Profile{
		SupplierID: supplierID,
		Score:      s.score,
		Band:       risk.BandFor(s.score),
	}, nil
}

type fakeProfileCache struct {
	entries map[string]*risk.Profile
	sets    int
}

func (c *fakeProfileCache) Get(_ context.Context, supplierID string) (*risk.Profile, bool) {
	p, ok := c.entries[supplierID]
	return p, ok
}

func (c *fakeProfileCache) Set(_ context.Context, supplierID string, profile *risk.Profile) {
	c.sets++
	c.entries[supplierID] = profile
}

func newTestPlanner(store *fakePOStore, scorer *fakeScorer, cache ProfileCache) *Planner {
	return NewPlanner(store, scorer, cache, zerolog.Nop())
}

func TestResolveReference(t *testing.T) {
	p := newTestPlanner(&fakePOStore{}, &fakeScorer{}, nil)

	tests := []struct {
		name       string
		ref        string
		supplierID string
		want       int64
		wantCode   errors.Code
	}{
		{name: "small integer used as-is", ref: "3", supplierID: "SUP001", want: 3},
		{name: "boundary integer used as-is", ref: "10000000", supplierID: "", want: 10000000},
		{name: "request code maps via supplier", ref: "PO-20250820123456", supplierID: "SUP001", want: 1},
		{name: "request code lowercase supplier", ref: "PO-20250820123456", supplierID: "sup002", want: 2},
		{name: "timestamp number maps via supplier", ref: "20250820123456", supplierID: "SUP003", want: 3},
		{name: "request code unknown supplier", ref: "PO-20250820123456", supplierID: "SUP777", wantCode: errors.ErrCodeUnresolvable},
		{name: "unrecognized text", ref: "garbage", supplierID: "SUP001", wantCode: errors.ErrCodeUnresolvable},
		{name: "empty reference", ref: "", supplierID: "SUP001", wantCode: errors.ErrCodeUnresolvable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ResolveReference(tt.ref, tt.supplierID)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecommendPlanAmounts(t *testing.T) {
	store := &fakePOStore{
		headers: map[int64]*POHeader{
			1: {POID: 1, SupplierID: "SUP001", Currency: "EUR", ExchangeRate: 2, TaxAmount: 100, FreightAmount: 50},
		},
		lines: map[int64]float64{1: 1000},
	}
	scorer := &fakeScorer{score: 60} // MEDIUM, 70% upfront
	p := newTestPlanner(store, scorer, nil)

	plan, err := p.RecommendPlan(context.Background(), "1", "SUP001")
	require.NoError(t, err)

	assert.Equal(t, int64(1), plan.POID)
	assert.Equal(t, "EUR", plan.Currency)
	assert.Equal(t, 1150.0, plan.Totals.TotalPOAmount)
	assert.Equal(t, 2300.0, plan.Totals.TotalInBase)
	assert.Equal(t, risk.BandMedium, plan.Policy.Band)
	assert.Equal(t, 70.0, plan.Policy.UpfrontPercent)
	assert.Equal(t, 30.0, plan.Policy.BalancePercent)
	assert.Equal(t, MilestoneDeliveryConfirmation, plan.Policy.Milestone)
	assert.Equal(t, PolicyVersion, plan.Policy.PolicyVersion)
	assert.Equal(t, 1610.0, plan.Amounts.UpfrontAmount)
	assert.Equal(t, 690.0, plan.Amounts.BalanceAmount)
}

func TestRecommendPlanSplitReconstructsTotal(t *testing.T) {
	// An awkward total whose upfront rounds: the balance must absorb the
	// rounding so the two parts always sum back to the total.
	store := &fakePOStore{
		headers: map[int64]*POHeader{
			2: {POID: 2, SupplierID: "SUP002", Currency: "USD", ExchangeRate: 1},
		},
		lines: map[int64]float64{2: 1234.57},
	}
	scorer := &fakeScorer{score: 65} // 73.947...% upfront
	p := newTestPlanner(store, scorer, nil)

	plan, err := p.RecommendPlan(context.Background(), "2", "SUP002")
	require.NoError(t, err)
	assert.InDelta(t, plan.Totals.TotalInBase, plan.Amounts.UpfrontAmount+plan.Amounts.BalanceAmount, 1e-9)
}

func TestRecommendPlanMissingExchangeRateDefaultsToOne(t *testing.T) {
	store := &fakePOStore{
		headers: map[int64]*POHeader{
			3: {POID: 3, SupplierID: "SUP003", Currency: "USD"},
		},
		lines: map[int64]float64{3: 500},
	}
	p := newTestPlanner(store, &fakeScorer{score: 90}, nil)

	plan, err := p.RecommendPlan(context.Background(), "3", "SUP003")
	require.NoError(t, err)
	assert.Equal(t, 1.0, plan.ExchangeRate)
	assert.Equal(t, 500.0, plan.Totals.TotalInBase)
	assert.Equal(t, 500.0, plan.Amounts.UpfrontAmount)
	assert.Equal(t, 0.0, plan.Amounts.BalanceAmount)
}

func TestRecommendPlanUnknownPO(t *testing.T) {
	p := newTestPlanner(&fakePOStore{}, &fakeScorer{score: 90}, nil)

	_, err := p.RecommendPlan(context.Background(), "42", "SUP001")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.GetCode(err))
}

func TestRecommendPlanCacheReadThrough(t *testing.T) {
	store := &fakePOStore{
		headers: map[int64]*POHeader{
			1: {POID: 1, SupplierID: "SUP001", Currency: "USD", ExchangeRate: 1},
		},
		lines: map[int64]float64{1: 100},
	}
	scorer := &fakeScorer{score: 85}
	cache := &fakeProfileCache{entries: map[string]*risk.Profile{}}
	p := newTestPlanner(store, scorer, cache)

	_, err := p.RecommendPlan(context.Background(), "1", "SUP001")
	require.NoError(t, err)
	assert.Equal(t, 1, scorer.calls)
	assert.Equal(t, 1, cache.sets)

	_, err = p.RecommendPlan(context.Background(), "1", "SUP001")
	require.NoError(t, err)
	assert.Equal(t, 1, scorer.calls, "second plan must hit the cache")
}

func TestRecommendPlanForSupplier(t *testing.T) {
	store := &fakePOStore{
		headers: map[int64]*POHeader{
			7: {POID: 7, SupplierID: "SUP001", Currency: "USD", ExchangeRate: 1},
		},
		lines:  map[int64]float64{7: 250},
		latest: map[string]int64{"SUP001": 7},
	}
	p := newTestPlanner(store, &fakeScorer{score: 85}, nil)

	plan, err := p.RecommendPlanForSupplier(context.Background(), "SUP001")
	require.NoError(t, err)
	assert.Equal(t, int64(7), plan.POID)

	_, err = p.RecommendPlanForSupplier(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	_, err = p.RecommendPlanForSupplier(context.Background(), "SUP404")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.GetCode(err))
}
