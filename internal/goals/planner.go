// Package goals manages user savings goals against the live snapshot.
package goals

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/akeef891/Finance-Clarity/internal/models"
)

// Store is the goal persistence boundary.
type Store interface {
	CreateGoal(goal *models.Goal) error
	ListGoals(userID int64) ([]models.Goal, error)
	FindActiveGoalByName(userID int64, name string) (*models.Goal, error)
	SaveGoalProgress(goal *models.Goal) error
}

// Planner creates goals and recomputes their progress and achievability.
// BehindRatio is the fraction of expected-by-now savings below which a goal
// is marked behind schedule.
type Planner struct {
	store       Store
	entropy     *rand.Rand
	BehindRatio float64
}

func NewPlanner(store Store) *Planner {
	return &Planner{
		store:       store,
		entropy:     rand.New(rand.NewSource(time.Now().UnixNano())),
		BehindRatio: 0.8,
	}
}

func (p *Planner) newID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), p.entropy).String()
}

// Create validates and stores a new goal. Names are unique per user among
// non-terminal goals, compared case-insensitively after trimming.
func (p *Planner) Create(userID int64, name string, targetAmount float64, durationMonths int) (*models.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("goal name is required")
	}
	if targetAmount <= 0 {
		return nil, fmt.Errorf("target amount must be positive")
	}
	if durationMonths <= 0 {
		return nil, fmt.Errorf("duration must be at least one month")
	}

	existing, err := p.store.FindActiveGoalByName(userID, name)
	if err != nil {
		return nil, fmt.Errorf("check existing goals: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("a goal named %q already exists", existing.Name)
	}

	now := time.Now()
	goal := &models.Goal{
		ID:                 p.newID(now),
		UserID:             userID,
		Name:               name,
		TargetAmount:       targetAmount,
		DurationMonths:     durationMonths,
		MonthlyRequirement: targetAmount / float64(durationMonths),
		Status:             models.GoalActive,
		CreatedAt:          now,
	}
	if err := p.store.CreateGoal(goal); err != nil {
		return nil, fmt.Errorf("store goal: %w", err)
	}
	return goal, nil
}

// UpdateProgress recomputes saved amount, completion and status from the
// snapshot. It is a pure function of (goal, snapshot, now) and safe to call
// repeatedly.
func (p *Planner) UpdateProgress(goal *models.Goal, s *models.Snapshot, now time.Time) {
	saved := s.Savings
	if saved < 0 {
		saved = 0
	}
	if saved > goal.TargetAmount {
		saved = goal.TargetAmount
	}
	goal.AmountSaved = saved

	completion := 0.0
	if goal.TargetAmount > 0 {
		completion = saved / goal.TargetAmount * 100
	}
	if completion > 100 {
		completion = 100
	}
	goal.CompletionPct = completion

	switch {
	case completion >= 100:
		goal.Status = models.GoalCompleted
	case saved < p.expectedByNow(goal, now)*p.BehindRatio:
		goal.Status = models.GoalBehind
	default:
		goal.Status = models.GoalActive
	}
}

func (p *Planner) expectedByNow(goal *models.Goal, now time.Time) float64 {
	months := goal.MonthsElapsed(now)
	if months < 1 {
		months = 1
	}
	return goal.MonthlyRequirement * float64(months)
}

// Refresh recomputes and persists progress for every stored goal. Persistence
// is best effort; the recomputed goals are returned either way.
func (p *Planner) Refresh(userID int64, s *models.Snapshot, now time.Time) ([]models.Goal, error) {
	goals, err := p.store.ListGoals(userID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		p.UpdateProgress(&goals[i], s, now)
		p.store.SaveGoalProgress(&goals[i])
	}
	return goals, nil
}

// Achievability verdicts.
const (
	VerdictAchievable        = "achievable"
	VerdictRequiresReduction = "requires_reduction"
	VerdictInfeasible        = "infeasible"
)

// ReductionStep is one suggested cut of a category's spending.
type ReductionStep struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Analysis is the result of checking a goal against a snapshot.
type Analysis struct {
	Verdict   string          `json:"verdict"`
	Shortfall float64         `json:"shortfall"`
	Plan      []ReductionStep `json:"plan,omitempty"`
}

// Analyze classifies a goal's achievability against the snapshot. When the
// monthly requirement exceeds current free savings but not income, it builds
// a reduction plan that targets the largest flexible category first and
// spills the remainder into the next.
func Analyze(goal *models.Goal, s *models.Snapshot) Analysis {
	if s.Income <= 0 || goal.MonthlyRequirement > s.Income {
		return Analysis{Verdict: VerdictInfeasible}
	}

	free := s.Income - s.Expenses
	if goal.MonthlyRequirement <= free {
		return Analysis{Verdict: VerdictAchievable}
	}

	shortfall := goal.MonthlyRequirement - free
	return Analysis{
		Verdict:   VerdictRequiresReduction,
		Shortfall: shortfall,
		Plan:      reductionPlan(s.FlexibleByCat, shortfall),
	}
}

func reductionPlan(flexible map[string]float64, shortfall float64) []ReductionStep {
	type entry struct {
		name   string
		amount float64
	}
	entries := make([]entry, 0, len(flexible))
	for name, amount := range flexible {
		if amount > 0 {
			entries = append(entries, entry{name, amount})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].amount != entries[j].amount {
			return entries[i].amount > entries[j].amount
		}
		return entries[i].name < entries[j].name
	})

	var plan []ReductionStep
	remaining := shortfall
	for _, e := range entries {
		if remaining <= 0 {
			break
		}
		cut := e.amount
		if cut > remaining {
			cut = remaining
		}
		plan = append(plan, ReductionStep{Category: e.name, Amount: cut})
		remaining -= cut
	}
	return plan
}
