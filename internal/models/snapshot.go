package models

import "time"

// Health classifications for a snapshot.
const (
	HealthHealthy        = "Healthy"
	HealthModerate       = "Moderate"
	HealthNeedsAttention = "Needs Attention"
)

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Trend is the month-over-month movement of income and expenses.
type Trend struct {
	ExpenseDirection string  `json:"expense_direction"`
	ExpenseChangePct float64 `json:"expense_change_pct"`
	IncomeDirection  string  `json:"income_direction"`
	IncomeChangePct  float64 `json:"income_change_pct"`
}

// Snapshot is a derived, point-in-time view of a user's aggregate financial
// state. It is treated as immutable once built; anything that needs to vary
// a snapshot must work on a Clone.
type Snapshot struct {
	Income           float64            `json:"income"`
	Expenses         float64            `json:"expenses"`
	FixedExpenses    float64            `json:"fixed_expenses"`
	FlexibleExpenses float64            `json:"flexible_expenses"`
	Savings          float64            `json:"savings"`
	SavingsRate      float64            `json:"savings_rate"`  // percent
	ExpenseRatio     float64            `json:"expense_ratio"` // percent
	Health           string             `json:"health"`
	HealthScore      int                `json:"health_score"` // 0-100
	TopCategories    []CategoryExpense  `json:"top_categories"`
	FlexibleByCat    map[string]float64 `json:"flexible_by_category"`
	MonthlyHistory   []MonthlyTotals    `json:"monthly_history"`
	HasTrend         bool               `json:"has_trend"`
	Trend            Trend              `json:"trend"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// Clone returns a deep copy. Slices and the category map are copied so the
// result can be mutated without touching the original.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.TopCategories = make([]CategoryExpense, len(s.TopCategories))
	copy(out.TopCategories, s.TopCategories)
	out.MonthlyHistory = make([]MonthlyTotals, len(s.MonthlyHistory))
	copy(out.MonthlyHistory, s.MonthlyHistory)
	out.FlexibleByCat = make(map[string]float64, len(s.FlexibleByCat))
	for k, v := range s.FlexibleByCat {
		out.FlexibleByCat[k] = v
	}
	return &out
}

// Recompute refreshes savings, savings rate and expense ratio from the
// current income/expense pair. The two ratios are always derived together so
// they can never disagree about which totals they were computed from.
func (s *Snapshot) Recompute() {
	s.Savings = s.Income - s.Expenses
	if s.Income <= 0 {
		s.SavingsRate = 0
		s.ExpenseRatio = 0
		return
	}
	s.SavingsRate = s.Savings / s.Income * 100
	s.ExpenseRatio = s.Expenses / s.Income * 100
}

// Overspending reports whether expenses exceed income.
func (s *Snapshot) Overspending() bool {
	return s.Expenses > s.Income
}
