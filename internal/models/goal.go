package models

import "time"

// Goal statuses.
const (
	GoalActive    = "active"
	GoalBehind    = "behind"
	GoalCompleted = "completed"
)

// Goal is a user-declared savings target. MonthlyRequirement is derived at
// creation; AmountSaved, CompletionPct and Status are recomputed from the
// live snapshot and never edited directly.
type Goal struct {
	ID                 string    `json:"id"`
	UserID             int64     `json:"user_id"`
	Name               string    `json:"name"`
	TargetAmount       float64   `json:"target_amount"`
	DurationMonths     int       `json:"duration_months"`
	MonthlyRequirement float64   `json:"monthly_requirement"`
	AmountSaved        float64   `json:"amount_saved"`
	CompletionPct      float64   `json:"completion_pct"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// Terminal reports whether the goal has reached a final state. Name
// uniqueness is only enforced among non-terminal goals.
func (g *Goal) Terminal() bool {
	return g.Status == GoalCompleted
}

// MonthsElapsed returns whole months since creation, never below zero.
func (g *Goal) MonthsElapsed(now time.Time) int {
	if now.Before(g.CreatedAt) {
		return 0
	}
	months := int(now.Sub(g.CreatedAt).Hours() / (24 * 30))
	return months
}
