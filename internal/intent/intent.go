// Package intent classifies normalized user questions into a closed tag set.
package intent

// Type is the classified purpose of a user's question.
type Type string

const (
	Greeting           Type = "GREETING"
	Help               Type = "HELP"
	MonthlyReport      Type = "MONTHLY_REPORT"
	FinancialHealth    Type = "FINANCIAL_HEALTH"
	SaveMore           Type = "SAVE_MORE"
	SavingsRate        Type = "SAVINGS_RATE"
	IncomeQuery        Type = "INCOME_QUERY"
	ExpenseQuery       Type = "EXPENSE_QUERY"
	IncomeVsExpense    Type = "INCOME_VS_EXPENSE"
	CategoryBreakdown  Type = "CATEGORY_BREAKDOWN"
	TopExpenses        Type = "TOP_EXPENSES"
	ReduceCategory     Type = "REDUCE_CATEGORY"
	OverspendingCheck  Type = "OVERSPENDING_CHECK"
	TrendAnalysis      Type = "TREND_ANALYSIS"
	Affordability      Type = "AFFORDABILITY"
	WhatIfSimulation   Type = "WHAT_IF_SIMULATION"
	CreateGoal         Type = "CREATE_GOAL"
	GoalProgress       Type = "GOAL_PROGRESS"
	GoalFeasibility    Type = "GOAL_FEASIBILITY"
	AdjustGoal         Type = "ADJUST_GOAL"
	ListGoals          Type = "LIST_GOALS"
	BudgetAdvice       Type = "BUDGET_ADVICE"
	EmergencyFund      Type = "EMERGENCY_FUND"
	DebtAdvice         Type = "DEBT_ADVICE"
	InvestmentQuery    Type = "INVESTMENT_QUERY"
	TaxQuery           Type = "TAX_QUERY"
	SubscriptionAudit  Type = "SUBSCRIPTION_AUDIT"
	AlertsQuery        Type = "ALERTS_QUERY"
	LanguagePreference Type = "LANGUAGE_PREFERENCE"
	ClearHistory       Type = "CLEAR_HISTORY"
	GeneralAdvice      Type = "GENERAL_ADVICE"
)

// Intent pairs a tag with the classifier's confidence in [0,1]. Generators
// keyed by tag only fire at confidence 0.7 or above; below that the keyword
// fallback chain answers instead.
type Intent struct {
	Type       Type    `json:"type"`
	Confidence float64 `json:"confidence"`
}

// DispatchThreshold is the minimum confidence for tag-specific dispatch.
const DispatchThreshold = 0.7
