package generate

import "strings"

// fallbackStep pairs trigger keywords with the generator that answers them.
type fallbackStep struct {
	keywords []string
	gen      Generator
}

// fallbackSteps mirror the intent topics so a low-confidence question still
// lands near the right answer. Walked in order, first hit wins.
var fallbackSteps = []fallbackStep{
	{[]string{"income", "earn", "salary"}, incomeVsExpense},
	{[]string{"save", "saving"}, saveMore},
	{[]string{"overspend", "too much"}, overspendingCheck},
	{[]string{"category", "breakdown", "where"}, categoryBreakdown},
	{[]string{"afford", "buy"}, affordability},
	{[]string{"trend", "month", "compare"}, trendAnalysis},
	{[]string{"spend", "expense", "cost"}, expenseQuery},
	{[]string{"help", "what can"}, capabilities},
}

// fallbackChain answers questions that no rule claimed with confidence. The
// final fallback is the static capability summary.
func fallbackChain(args Args) string {
	message := strings.ToLower(args.Message)
	for _, step := range fallbackSteps {
		for _, kw := range step.keywords {
			if strings.Contains(message, kw) {
				return step.gen(args)
			}
		}
	}
	return capabilities(args)
}
