// Package snapshot derives a read-only financial snapshot from raw records.
package snapshot

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/akeef891/Finance-Clarity/internal/models"
)

// DataProvider is the read-only boundary to the financial records store.
type DataProvider interface {
	TotalIncome(userID int64) (float64, error)
	TotalExpenses(userID int64) (float64, error)
	FixedExpenses(userID int64) (float64, error)
	FlexibleSpending(userID int64) (map[string]float64, error)
	CategoryTotals(userID int64) ([]models.CategoryExpense, error)
	MonthlyHistory(userID int64, months int) ([]models.MonthlyTotals, error)
}

// Shared bands. The alert checks and the provider context flags use the
// same cut-offs as the health classification.
const (
	HighExpenseRatioPct = 85.0
	LowSavingsRatePct   = 10.0
)

// Thresholds for the health classification and trend analysis.
const (
	healthyExpenseRatio = 50.0
	healthySavingsRate  = 20.0
	moderateRatio       = 70.0
	trendBandPct        = 5.0
	trendRecentMonths   = 3
	historyMonths       = 24
	topCategoryCount    = 5
)

type Builder struct {
	provider DataProvider
	log      *logrus.Logger
}

func NewBuilder(provider DataProvider, log *logrus.Logger) *Builder {
	return &Builder{provider: provider, log: log}
}

// Build assembles a snapshot for the user. It never fails: any provider
// error degrades to a zeroed snapshot, which generators treat as "no data".
func (b *Builder) Build(userID int64) *models.Snapshot {
	s := &models.Snapshot{
		FlexibleByCat: map[string]float64{},
		GeneratedAt:   time.Now(),
	}
	if b.provider == nil {
		return s
	}

	var err error
	if s.Income, err = b.provider.TotalIncome(userID); err != nil {
		b.log.WithError(err).Warn("snapshot: income unavailable")
		return s
	}
	if s.Expenses, err = b.provider.TotalExpenses(userID); err != nil {
		b.log.WithError(err).Warn("snapshot: expenses unavailable")
		return s
	}
	if s.FixedExpenses, err = b.provider.FixedExpenses(userID); err != nil {
		s.FixedExpenses = 0
	}
	s.FlexibleExpenses = s.Expenses - s.FixedExpenses

	if flexible, err := b.provider.FlexibleSpending(userID); err == nil && flexible != nil {
		s.FlexibleByCat = flexible
	}

	s.Recompute()
	s.Health = classify(s)
	s.HealthScore = score(s)
	s.TopCategories = topCategories(b.provider, userID, s.Income)

	if history, err := b.provider.MonthlyHistory(userID, historyMonths); err == nil {
		s.MonthlyHistory = history
		s.HasTrend, s.Trend = analyzeTrend(history)
	}

	return s
}

// classify applies the health precedence: overspending always wins, then the
// high expense ratio, then the healthy and moderate bands. A band matches on
// either its ratio or its savings-rate threshold, so a strong saver with a
// middling expense ratio still reads as healthy.
func classify(s *models.Snapshot) string {
	switch {
	case s.Overspending():
		return models.HealthNeedsAttention
	case s.ExpenseRatio > HighExpenseRatioPct:
		return models.HealthNeedsAttention
	case s.ExpenseRatio < healthyExpenseRatio || s.SavingsRate > healthySavingsRate:
		return models.HealthHealthy
	case s.ExpenseRatio < moderateRatio || s.SavingsRate > LowSavingsRatePct:
		return models.HealthModerate
	default:
		return models.HealthNeedsAttention
	}
}

// score maps the snapshot to a 0-100 scale for the external provider context.
func score(s *models.Snapshot) int {
	if s.Income <= 0 {
		return 0
	}
	score := 100.0
	if s.Overspending() {
		score -= 50
	}
	if s.ExpenseRatio > HighExpenseRatioPct {
		score -= 25
	} else if s.ExpenseRatio > moderateRatio {
		score -= 15
	}
	if s.SavingsRate < LowSavingsRatePct {
		score -= 20
	} else if s.SavingsRate < healthySavingsRate {
		score -= 10
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}

func topCategories(provider DataProvider, userID int64, income float64) []models.CategoryExpense {
	totals, err := provider.CategoryTotals(userID)
	if err != nil || len(totals) == 0 {
		return nil
	}
	if len(totals) > topCategoryCount {
		totals = totals[:topCategoryCount]
	}
	for i := range totals {
		if income > 0 {
			totals[i].PercentOfIncome = totals[i].Amount / income * 100
		}
	}
	return totals
}

// analyzeTrend compares the mean of the most recent months (at most three,
// always leaving at least one prior month) against the mean of everything
// before them. Moves within ±5% are reported as stable.
func analyzeTrend(history []models.MonthlyTotals) (bool, models.Trend) {
	if len(history) < 2 {
		return false, models.Trend{}
	}

	recent := trendRecentMonths
	if recent > len(history)-1 {
		recent = len(history) - 1
	}
	prior := history[:len(history)-recent]
	latest := history[len(history)-recent:]

	trend := models.Trend{
		ExpenseDirection: models.TrendStable,
		IncomeDirection:  models.TrendStable,
	}
	trend.ExpenseChangePct = changePct(meanExpense(prior), meanExpense(latest))
	trend.IncomeChangePct = changePct(meanIncome(prior), meanIncome(latest))
	trend.ExpenseDirection = direction(trend.ExpenseChangePct)
	trend.IncomeDirection = direction(trend.IncomeChangePct)

	return true, trend
}

func direction(changePct float64) string {
	switch {
	case changePct > trendBandPct:
		return models.TrendIncreasing
	case changePct < -trendBandPct:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func changePct(before, after float64) float64 {
	if before <= 0 {
		return 0
	}
	return (after - before) / before * 100
}

func meanExpense(months []models.MonthlyTotals) float64 {
	if len(months) == 0 {
		return 0
	}
	var total float64
	for _, m := range months {
		total += m.Expense
	}
	return total / float64(len(months))
}

func meanIncome(months []models.MonthlyTotals) float64 {
	if len(months) == 0 {
		return 0
	}
	var total float64
	for _, m := range months {
		total += m.Income
	}
	return total / float64(len(months))
}
