package snapshot

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeef891/Finance-Clarity/internal/models"
)

type stubProvider struct {
	income   float64
	expenses float64
	fixed    float64
	flexible map[string]float64
	totals   []models.CategoryExpense
	history  []models.MonthlyTotals
	err      error
}

func (p *stubProvider) TotalIncome(int64) (float64, error)   { return p.income, p.err }
func (p *stubProvider) TotalExpenses(int64) (float64, error) { return p.expenses, p.err }
func (p *stubProvider) FixedExpenses(int64) (float64, error) { return p.fixed, p.err }
func (p *stubProvider) FlexibleSpending(int64) (map[string]float64, error) {
	return p.flexible, p.err
}
func (p *stubProvider) CategoryTotals(int64) ([]models.CategoryExpense, error) {
	return p.totals, p.err
}
func (p *stubProvider) MonthlyHistory(int64, int) ([]models.MonthlyTotals, error) {
	return p.history, p.err
}

func newBuilder(p DataProvider) *Builder {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewBuilder(p, log)
}

func TestBuildZeroIncome(t *testing.T) {
	b := newBuilder(&stubProvider{income: 0, expenses: 500})
	s := b.Build(1)

	assert.Equal(t, 0.0, s.SavingsRate)
	assert.Equal(t, 0.0, s.ExpenseRatio)
	assert.Equal(t, models.HealthNeedsAttention, s.Health)
}

func TestBuildHealthClassification(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expenses float64
		want     string
	}{
		{"healthy", 100000, 60000, models.HealthHealthy},
		{"overspending", 100000, 120000, models.HealthNeedsAttention},
		{"high ratio", 100000, 90000, models.HealthNeedsAttention},
		{"moderate", 100000, 82000, models.HealthModerate},
		{"savings rate at boundary", 100000, 80000, models.HealthModerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder(&stubProvider{income: tt.income, expenses: tt.expenses})
			s := b.Build(1)
			assert.Equal(t, tt.want, s.Health)
		})
	}
}

func TestBuildHealthyExample(t *testing.T) {
	b := newBuilder(&stubProvider{income: 100000, expenses: 60000})
	s := b.Build(1)

	assert.InDelta(t, 60.0, s.ExpenseRatio, 0.001)
	assert.InDelta(t, 40.0, s.SavingsRate, 0.001)
	assert.Equal(t, models.HealthHealthy, s.Health)
}

func TestBuildNoProvider(t *testing.T) {
	b := newBuilder(nil)
	s := b.Build(1)

	assert.Equal(t, 0.0, s.Income)
	assert.False(t, s.HasTrend)
	assert.NotNil(t, s.FlexibleByCat)
}

func TestTrendRequiresTwoMonths(t *testing.T) {
	b := newBuilder(&stubProvider{
		income:  50000,
		history: []models.MonthlyTotals{{Month: "2026-08", Income: 50000, Expense: 30000}},
	})
	s := b.Build(1)
	assert.False(t, s.HasTrend)
}

func TestTrendIncreasingExpenses(t *testing.T) {
	history := []models.MonthlyTotals{
		{Month: "2026-03", Income: 50000, Expense: 20000},
		{Month: "2026-04", Income: 50000, Expense: 20000},
		{Month: "2026-05", Income: 50000, Expense: 20000},
		{Month: "2026-06", Income: 50000, Expense: 30000},
		{Month: "2026-07", Income: 50000, Expense: 30000},
		{Month: "2026-08", Income: 50000, Expense: 30000},
	}
	b := newBuilder(&stubProvider{income: 50000, expenses: 30000, history: history})
	s := b.Build(1)

	require.True(t, s.HasTrend)
	assert.Equal(t, models.TrendIncreasing, s.Trend.ExpenseDirection)
	assert.InDelta(t, 50.0, s.Trend.ExpenseChangePct, 0.001)
	assert.Equal(t, models.TrendStable, s.Trend.IncomeDirection)
}

func TestTrendStableWithinBand(t *testing.T) {
	history := []models.MonthlyTotals{
		{Month: "2026-06", Income: 50000, Expense: 30000},
		{Month: "2026-07", Income: 50000, Expense: 30900},
	}
	b := newBuilder(&stubProvider{income: 50000, expenses: 30900, history: history})
	s := b.Build(1)

	require.True(t, s.HasTrend)
	assert.Equal(t, models.TrendStable, s.Trend.ExpenseDirection)
}

func TestTopCategoriesRankedAndCapped(t *testing.T) {
	totals := []models.CategoryExpense{
		{Name: "rent", Amount: 20000, Fixed: true},
		{Name: "food", Amount: 10000},
		{Name: "transport", Amount: 5000},
		{Name: "shopping", Amount: 4000},
		{Name: "bills", Amount: 3000},
		{Name: "misc", Amount: 100},
	}
	b := newBuilder(&stubProvider{income: 100000, expenses: 42100, totals: totals})
	s := b.Build(1)

	require.Len(t, s.TopCategories, 5)
	assert.Equal(t, "rent", s.TopCategories[0].Name)
	assert.InDelta(t, 20.0, s.TopCategories[0].PercentOfIncome, 0.001)
}

func TestCloneIsolation(t *testing.T) {
	b := newBuilder(&stubProvider{
		income:   100000,
		expenses: 40000,
		flexible: map[string]float64{"food": 10000},
	})
	s := b.Build(1)

	clone := s.Clone()
	clone.Expenses = 99999
	clone.FlexibleByCat["food"] = 1

	assert.Equal(t, 40000.0, s.Expenses)
	assert.Equal(t, 10000.0, s.FlexibleByCat["food"])
}
