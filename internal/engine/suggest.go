package engine

import (
	"fmt"

	"github.com/akeef891/Finance-Clarity/internal/models"
)

const maxSuggestions = 4

// suggest picks a few questions worth asking next, most pressing first.
func suggest(snap *models.Snapshot, userGoals []models.Goal) []string {
	var out []string

	if snap.Income == 0 && snap.Expenses == 0 {
		return []string{
			"What can you do?",
			"How do I add my income and expenses?",
		}
	}

	if snap.Overspending() {
		out = append(out, "Where can I cut back on my spending?")
	}
	if snap.HasTrend && snap.Trend.ExpenseDirection == models.TrendIncreasing {
		out = append(out, "Why are my expenses going up?")
	}
	for _, g := range userGoals {
		if g.Status == models.GoalBehind {
			out = append(out, fmt.Sprintf("How do I get my %s goal back on track?", g.Name))
			break
		}
	}

	if len(userGoals) > 0 {
		out = append(out, "How are my goals doing?")
	} else {
		out = append(out, "Help me create a savings goal")
	}
	out = append(out,
		"Give me my monthly report",
		"How is my financial health?",
		"What is my savings rate?",
	)

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
