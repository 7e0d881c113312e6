package llm

import (
	"github.com/akeef891/Finance-Clarity/internal/models"
	"github.com/akeef891/Finance-Clarity/internal/snapshot"
)

// AIContext is the aggregated summary shared with the provider in place of
// raw transaction data.
type AIContext struct {
	Income        float64                  `json:"income"`
	Expenses      float64                  `json:"expenses"`
	Savings       float64                  `json:"savings"`
	SavingsRate   float64                  `json:"savings_rate"`
	ExpenseRatio  float64                  `json:"expense_ratio"`
	HealthScore   int                      `json:"health_score"`
	HealthStatus  string                   `json:"health_status"`
	TopCategories []models.CategoryExpense `json:"top_categories,omitempty"`
	Flags         ContextFlags             `json:"flags"`
	UserMemory    map[string]string        `json:"user_memory,omitempty"`
	ActiveAlerts  []string                 `json:"active_alerts,omitempty"`
	Language      string                   `json:"language"`
}

type ContextFlags struct {
	Overspending     bool `json:"overspending"`
	LowSavings       bool `json:"low_savings"`
	HighExpenseRatio bool `json:"high_expense_ratio"`
	IncreasingTrend  bool `json:"increasing_trend"`
}

// BuildContext reduces a snapshot and profile to the provider context.
func BuildContext(s *models.Snapshot, profile *models.MemoryProfile) AIContext {
	ctx := AIContext{
		Income:       s.Income,
		Expenses:     s.Expenses,
		Savings:      s.Savings,
		SavingsRate:  s.SavingsRate,
		ExpenseRatio: s.ExpenseRatio,
		HealthScore:  s.HealthScore,
		HealthStatus: s.Health,
		Language:     "en",
		Flags: ContextFlags{
			Overspending:     s.Overspending(),
			LowSavings:       s.Savings > 0 && s.SavingsRate < snapshot.LowSavingsRatePct,
			HighExpenseRatio: s.ExpenseRatio > snapshot.HighExpenseRatioPct,
			IncreasingTrend:  s.HasTrend && s.Trend.ExpenseDirection == models.TrendIncreasing,
		},
	}

	if len(s.TopCategories) > 5 {
		ctx.TopCategories = s.TopCategories[:5]
	} else {
		ctx.TopCategories = s.TopCategories
	}

	if profile != nil {
		ctx.Language = profile.Language
		ctx.UserMemory = map[string]string{
			"response_style": profile.ResponseStyle,
			"risk_tolerance": profile.RiskTolerance,
		}
		for _, a := range profile.CurrentAlerts {
			ctx.ActiveAlerts = append(ctx.ActiveAlerts, a.Message)
		}
	}
	return ctx
}
