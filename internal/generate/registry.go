// Package generate turns intents and snapshots into response text.
package generate

import (
	"time"

	"github.com/akeef891/Finance-Clarity/internal/goals"
	"github.com/akeef891/Finance-Clarity/internal/intent"
	"github.com/akeef891/Finance-Clarity/internal/models"
)

// Args is everything a generator may draw on for one turn. Generators only
// read from it; the orchestrator owns all mutation.
type Args struct {
	UserID   int64
	Message  string
	Snapshot *models.Snapshot
	Goals    []models.Goal
	Planner  *goals.Planner
	Profile  *models.MemoryProfile
	Context  intent.Context
	Now      time.Time
}

// Generator produces response text for one intent. Generators never fail:
// missing data yields an explanatory string.
type Generator func(Args) string

// Registry dispatches intents to generators, falling back to the keyword
// chain for low-confidence or unregistered intents.
type Registry struct {
	generators map[intent.Type]Generator
}

func NewRegistry() *Registry {
	r := &Registry{generators: map[intent.Type]Generator{}}
	r.register()
	return r
}

func (r *Registry) register() {
	r.generators[intent.Greeting] = greeting
	r.generators[intent.Help] = capabilities
	r.generators[intent.MonthlyReport] = monthlyReport
	r.generators[intent.FinancialHealth] = financialHealth
	r.generators[intent.SaveMore] = saveMore
	r.generators[intent.SavingsRate] = savingsRate
	r.generators[intent.IncomeQuery] = incomeQuery
	r.generators[intent.ExpenseQuery] = expenseQuery
	r.generators[intent.IncomeVsExpense] = incomeVsExpense
	r.generators[intent.CategoryBreakdown] = categoryBreakdown
	r.generators[intent.TopExpenses] = topExpenses
	r.generators[intent.ReduceCategory] = reduceCategory
	r.generators[intent.OverspendingCheck] = overspendingCheck
	r.generators[intent.TrendAnalysis] = trendAnalysis
	r.generators[intent.Affordability] = affordability
	r.generators[intent.WhatIfSimulation] = whatIf
	r.generators[intent.CreateGoal] = createGoal
	r.generators[intent.GoalProgress] = goalProgress
	r.generators[intent.GoalFeasibility] = goalFeasibility
	r.generators[intent.AdjustGoal] = adjustGoal
	r.generators[intent.ListGoals] = listGoals
	r.generators[intent.BudgetAdvice] = budgetAdvice
	r.generators[intent.EmergencyFund] = emergencyFund
	r.generators[intent.DebtAdvice] = debtAdvice
	r.generators[intent.InvestmentQuery] = investmentQuery
	r.generators[intent.TaxQuery] = taxQuery
	r.generators[intent.SubscriptionAudit] = subscriptionAudit
	r.generators[intent.AlertsQuery] = alertsQuery
	r.generators[intent.LanguagePreference] = languagePreference
	r.generators[intent.ClearHistory] = clearHistoryNotice
	r.generators[intent.GeneralAdvice] = generalAdvice
}

// Generate dispatches to the intent's generator when confidence clears the
// threshold, otherwise walks the keyword fallback chain.
func (r *Registry) Generate(in intent.Intent, args Args) string {
	if in.Confidence >= intent.DispatchThreshold {
		if gen, ok := r.generators[in.Type]; ok {
			return gen(args)
		}
	}
	return fallbackChain(args)
}
