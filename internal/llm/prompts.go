package llm

import (
	"fmt"
	"strings"
)

// ChatPromptTemplate frames a conversational turn for the provider.
const ChatPromptTemplate = `You are a personal finance assistant for a single user in India.
Amounts are in Indian Rupees. Use Indian digit grouping (lakh, crore) when it reads naturally.
Respond in language: %s.

Rules you MUST follow:
- Base every number on the financial context below. NEVER invent figures.
- No specific investment product, stock, fund or crypto recommendations.
  If asked, suggest talking to a registered financial advisor.
- No guarantees about returns or outcomes. Use hedged language.
- Keep the answer under %d characters. Plain text, no markdown.

Financial context (aggregates only):
%s

User message:
%s`

// ReportPromptTemplate frames a monthly report request.
const ReportPromptTemplate = `You are a personal finance assistant writing a short monthly summary.
Amounts are in Indian Rupees. Respond in language: %s.

Cover: income vs expenses, savings rate, financial health, the largest
spending categories, and any active alerts. Keep it under %d characters.
No investment product recommendations. No guaranteed outcomes.

Financial context (aggregates only):
%s

User message:
%s`

// BuildPrompt renders the instruction text for a request. The engine sends it
// alongside the structured context so a plain text-completion provider can be
// used without understanding our JSON shape.
func BuildPrompt(req GenerateRequest, maxChars int) string {
	tmpl := ChatPromptTemplate
	if req.Type == TypeReport {
		tmpl = ReportPromptTemplate
	}
	return fmt.Sprintf(tmpl, req.Context.Language, maxChars, summarize(req.Context), req.Message)
}

func summarize(c AIContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "income=%.2f expenses=%.2f savings=%.2f\n", c.Income, c.Expenses, c.Savings)
	fmt.Fprintf(&b, "savings_rate=%.1f%% expense_ratio=%.1f%%\n", c.SavingsRate, c.ExpenseRatio)
	fmt.Fprintf(&b, "health=%s score=%d\n", c.HealthStatus, c.HealthScore)
	for _, cat := range c.TopCategories {
		fmt.Fprintf(&b, "category %s=%.2f (%.1f%% of income)\n", cat.Name, cat.Amount, cat.PercentOfIncome)
	}
	if c.Flags.Overspending {
		b.WriteString("flag: spending exceeds income\n")
	}
	if c.Flags.LowSavings {
		b.WriteString("flag: low savings rate\n")
	}
	if c.Flags.HighExpenseRatio {
		b.WriteString("flag: high expense ratio\n")
	}
	if c.Flags.IncreasingTrend {
		b.WriteString("flag: expenses trending up\n")
	}
	for _, a := range c.ActiveAlerts {
		fmt.Fprintf(&b, "alert: %s\n", a)
	}
	return strings.TrimRight(b.String(), "\n")
}
