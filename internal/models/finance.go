package models

// Record directions.
const (
	DirectionIncome  = "income"
	DirectionExpense = "expense"
)

// FinanceRecord is a single income or expense entry as stored.
type FinanceRecord struct {
	ID          string  `json:"id"`
	UserID      int64   `json:"user_id"`
	Type        string  `json:"type"` // income | expense
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Fixed       bool    `json:"fixed"`
	Description string  `json:"description"`
	RecordedAt  string  `json:"recorded_at"` // YYYY-MM-DD
	CreatedAt   string  `json:"created_at"`
}

// MonthlyTotals aggregates income and expenses for one calendar month.
type MonthlyTotals struct {
	Month   string  `json:"month"` // YYYY-MM
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryExpense is one ranked entry of the snapshot's top categories.
type CategoryExpense struct {
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	PercentOfIncome float64 `json:"percent_of_income"`
	Fixed           bool    `json:"fixed"`
}
