package intent

import "strings"

// Context is the short-term conversational context used to bias
// classification of follow-up questions.
type Context struct {
	LastTopic  Type
	Categories []string
	Amounts    []float64
}

// contextBoost is added to the confidence of a follow-up match, capped so a
// boosted guess never outranks a strong direct rule.
const (
	contextBoost    = 0.2
	contextBoostCap = 0.9
	fallbackScore   = 0.5
)

type rule struct {
	intent Type
	score  float64
	match  func(string) bool
}

// rules is evaluated in order and the first match wins. The ordering is a
// deliberate priority: specific phrasings (goal verbs, "monthly report",
// "what if") must be checked before the generic savings/income/expense
// rules that would otherwise swallow them.
var rules = []rule{
	{Greeting, 0.9, anyOf("hello", "hey", "namaste", "good morning", "good evening")},
	{Greeting, 0.9, func(t string) bool { return t == "hi" || strings.HasPrefix(t, "hi ") }},
	{ClearHistory, 0.9, allOf("clear", "history")},
	{ClearHistory, 0.9, allOf("clear", "chat")},
	{Help, 0.85, anyOf("help", "what can you do", "what do you do", "capabilities")},

	{CreateGoal, 0.95, func(t string) bool {
		return contains(t, "goal") && anyOf("create", "set", "new", "start", "make")(t)
	}},
	{CreateGoal, 0.9, func(t string) bool {
		return contains(t, "save") && contains(t, "month") && anyOf("in ", "within")(t) && hasDigit(t)
	}},
	{GoalProgress, 0.9, func(t string) bool {
		return contains(t, "goal") && anyOf("progress", "track", "status", "how far", "how am i")(t)
	}},
	{GoalFeasibility, 0.85, func(t string) bool {
		return contains(t, "goal") && anyOf("achiev", "feasib", "possible", "realistic", "reach")(t)
	}},
	{AdjustGoal, 0.85, func(t string) bool {
		return contains(t, "goal") && anyOf("adjust", "change", "extend", "modify", "update")(t)
	}},
	{ListGoals, 0.85, func(t string) bool {
		return contains(t, "goal") && anyOf("my goals", "list", "show", "all")(t)
	}},

	{WhatIfSimulation, 0.9, anyOf("what if", "what happens if", "suppose", "simulate", "scenario")},
	{Affordability, 0.9, anyOf("afford", "can i buy", "can i spend")},
	{MonthlyReport, 0.9, func(t string) bool {
		return anyOf("month", "monthly")(t) && anyOf("report", "summary", "overview")(t)
	}},
	{FinancialHealth, 0.85, anyOf("health", "how am i doing", "financial situation", "financially")},
	{OverspendingCheck, 0.85, anyOf("overspend", "spending too much", "spend too much", "over budget")},
	{TrendAnalysis, 0.8, anyOf("trend", "compared to last month", "going up", "going down", "increasing", "decreasing")},
	{TopExpenses, 0.85, func(t string) bool {
		return anyOf("top", "biggest", "largest", "highest")(t) && anyOf("expense", "spend", "categor", "cost")(t)
	}},
	{CategoryBreakdown, 0.8, anyOf("breakdown", "break down", "by category", "where does my money", "where is my money")},
	{ReduceCategory, 0.75, func(t string) bool {
		return anyOf("reduce", "cut", "lower", "trim")(t) && anyOf("spend", "expense", "cost", "on ")(t)
	}},
	{SavingsRate, 0.85, anyOf("savings rate", "saving rate", "rate of saving")},
	{SaveMore, 0.8, func(t string) bool {
		return anyOf("save", "saving")(t) && anyOf("more", "how", "increase", "improve", "tips")(t)
	}},
	{IncomeVsExpense, 0.8, func(t string) bool {
		return contains(t, "income") && anyOf("expense", "spending", "versus", " vs ")(t)
	}},
	{EmergencyFund, 0.85, anyOf("emergency fund", "emergency", "rainy day")},
	{DebtAdvice, 0.8, anyOf("debt", "loan", "borrow", "repay")},
	{InvestmentQuery, 0.8, anyOf("invest", "stock", "mutual fund", "sip", "crypto")},
	{TaxQuery, 0.8, anyOf("tax", "80c", "deduction")},
	{SubscriptionAudit, 0.8, anyOf("subscription", "recurring payment", "auto-debit")},
	{AlertsQuery, 0.8, anyOf("alert", "warning", "anything wrong", "any issues")},
	{LanguagePreference, 0.75, anyOf("language", "in hindi", "in english", "speak")},
	{BudgetAdvice, 0.75, anyOf("budget", "50/30/20", "plan my money")},
	{IncomeQuery, 0.75, anyOf("income", "earn", "salary", "how much do i make")},
	{ExpenseQuery, 0.7, anyOf("expense", "spent", "spending", "how much did i")},
	{SaveMore, 0.7, anyOf("save", "savings")},
}

// Classify maps a normalized question to an intent. It never fails: an
// unmatched question is GENERAL_ADVICE at the base fallback confidence.
func Classify(text string, ctx Context) Intent {
	text = strings.ToLower(strings.TrimSpace(text))
	result := Intent{Type: GeneralAdvice, Confidence: fallbackScore}

	for _, r := range rules {
		if r.match(text) {
			result = Intent{Type: r.intent, Confidence: r.score}
			break
		}
	}

	// Follow-up questions inherit the previous topic unless a direct rule
	// already fired with more confidence than the boost would give.
	if ctx.LastTopic != "" && isFollowUp(text) {
		boosted := result.Confidence + contextBoost
		if boosted > contextBoostCap {
			boosted = contextBoostCap
		}
		if result.Type == GeneralAdvice || (result.Type == ctx.LastTopic && result.Confidence < boosted) {
			return Intent{Type: ctx.LastTopic, Confidence: boosted}
		}
	}

	return result
}

func isFollowUp(text string) bool {
	return strings.HasPrefix(text, "what") ||
		strings.HasPrefix(text, "how") ||
		strings.HasPrefix(text, "which")
}

func contains(text, sub string) bool { return strings.Contains(text, sub) }

func anyOf(subs ...string) func(string) bool {
	return func(text string) bool {
		for _, sub := range subs {
			if strings.Contains(text, sub) {
				return true
			}
		}
		return false
	}
}

func allOf(subs ...string) func(string) bool {
	return func(text string) bool {
		for _, sub := range subs {
			if !strings.Contains(text, sub) {
				return false
			}
		}
		return true
	}
}

func hasDigit(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
