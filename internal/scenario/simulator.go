package scenario

import (
	"fmt"

	"github.com/akeef891/Finance-Clarity/internal/goals"
	"github.com/akeef891/Finance-Clarity/internal/models"
)

// Result is a simulated snapshot plus signed deltas against the original.
type Result struct {
	Snapshot     *models.Snapshot          `json:"snapshot"`
	IncomeDelta  float64                   `json:"income_delta"`
	ExpenseDelta float64                   `json:"expense_delta"`
	SavingsDelta float64                   `json:"savings_delta"`
	GoalAnalyses map[string]goals.Analysis `json:"goal_analyses,omitempty"`
}

// Simulate applies the descriptor to a deep copy of the snapshot and
// recomputes the derived metrics. The input snapshot is never modified, so
// repeated calls with equal inputs produce equal results.
func Simulate(base *models.Snapshot, d *Descriptor, activeGoals []models.Goal) (*Result, error) {
	if base == nil || d == nil {
		return nil, fmt.Errorf("snapshot and descriptor are required")
	}

	sim := base.Clone()

	sign := 1.0
	if d.Direction == DirectionDecrease {
		sign = -1
	}

	switch d.Target {
	case TargetIncome:
		delta := sign * d.resolveAmount(sim.Income)
		sim.Income += delta
		if sim.Income < 0 {
			sim.Income = 0
		}
	case TargetExpenses:
		delta := sign * d.resolveAmount(sim.Expenses)
		sim.Expenses += delta
		if sim.Expenses < 0 {
			sim.Expenses = 0
		}
	case TargetCategory:
		current, ok := sim.FlexibleByCat[d.Category]
		if !ok {
			return nil, fmt.Errorf("unknown category %q", d.Category)
		}
		delta := sign * d.resolveAmount(current)
		if current+delta < 0 {
			delta = -current
		}
		sim.FlexibleByCat[d.Category] = current + delta
		// Category deltas are summed back into the totals.
		sim.Expenses += delta
		sim.FlexibleExpenses += delta
	default:
		return nil, fmt.Errorf("unknown target %q", d.Target)
	}

	sim.Recompute()

	result := &Result{
		Snapshot:     sim,
		IncomeDelta:  sim.Income - base.Income,
		ExpenseDelta: sim.Expenses - base.Expenses,
		SavingsDelta: sim.Savings - base.Savings,
	}

	if len(activeGoals) > 0 {
		result.GoalAnalyses = map[string]goals.Analysis{}
		for i := range activeGoals {
			if activeGoals[i].Terminal() {
				continue
			}
			result.GoalAnalyses[activeGoals[i].Name] = goals.Analyze(&activeGoals[i], sim)
		}
	}

	return result, nil
}

// resolveAmount turns the descriptor's magnitude into an absolute delta,
// applying percentages against the targeted field's current value.
func (d *Descriptor) resolveAmount(current float64) float64 {
	if d.Percent > 0 {
		return current * d.Percent / 100
	}
	return d.Amount
}
