package generate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeef891/Finance-Clarity/internal/intent"
	"github.com/akeef891/Finance-Clarity/internal/models"
)

func snapshotFixture() *models.Snapshot {
	s := &models.Snapshot{
		Income:           50000,
		Expenses:         30000,
		FixedExpenses:    18000,
		FlexibleExpenses: 12000,
		FlexibleByCat:    map[string]float64{"food": 8000, "shopping": 4000},
		TopCategories: []models.CategoryExpense{
			{Name: "rent", Amount: 15000, PercentOfIncome: 30, Fixed: true},
			{Name: "food", Amount: 8000, PercentOfIncome: 16},
		},
	}
	s.Recompute()
	s.Health = models.HealthHealthy
	return s
}

func argsFixture() Args {
	return Args{
		UserID:   1,
		Snapshot: snapshotFixture(),
		Profile:  models.DefaultProfile(1),
		Now:      time.Now(),
	}
}

func TestGenerateDispatchesHighConfidence(t *testing.T) {
	r := NewRegistry()
	args := argsFixture()

	got := r.Generate(intent.Intent{Type: intent.SavingsRate, Confidence: 0.85}, args)
	assert.Contains(t, got, "40.0%")
}

func TestGenerateLowConfidenceFallsThrough(t *testing.T) {
	r := NewRegistry()
	args := argsFixture()
	args.Message = "tell me about my savings please"

	got := r.Generate(intent.Intent{Type: intent.SavingsRate, Confidence: 0.6}, args)
	// Keyword chain routes to the save-more answer, not the rate answer.
	assert.Contains(t, got, "save")
}

func TestGenerateUnknownIntentUsesCapabilitySummary(t *testing.T) {
	r := NewRegistry()
	args := argsFixture()
	args.Message = "zzz"

	got := r.Generate(intent.Intent{Type: intent.GeneralAdvice, Confidence: 0.5}, args)
	assert.Contains(t, got, "what-if")
}

func TestEveryGeneratorSurvivesEmptySnapshot(t *testing.T) {
	r := NewRegistry()
	empty := &models.Snapshot{FlexibleByCat: map[string]float64{}}
	empty.Recompute()
	args := Args{UserID: 1, Snapshot: empty, Message: "anything", Now: time.Now()}

	for tag := range r.generators {
		got := r.generators[tag](args)
		assert.NotEmpty(t, got, "generator %s returned empty text", tag)
	}
}

func TestMonthlyReportIncludesAlerts(t *testing.T) {
	args := argsFixture()
	args.Profile.CurrentAlerts = []models.Alert{{
		Type:    models.AlertHighExpenseRatio,
		Message: "Your expenses use over 85% of income.",
	}}

	got := monthlyReport(args)
	assert.Contains(t, got, "Heads up")
}

func TestWhatIfUnparsableScenario(t *testing.T) {
	args := argsFixture()
	args.Message = "what if everything changes"

	got := whatIf(args)
	assert.Contains(t, got, "what if my income increases by 10%")
}

func TestWhatIfListsGoalsInStableOrder(t *testing.T) {
	args := argsFixture()
	args.Message = "what if my income increases by 10%"
	args.Goals = []models.Goal{
		{ID: "g2", UserID: 1, Name: "Trip", TargetAmount: 60000, DurationMonths: 6, MonthlyRequirement: 10000, Status: models.GoalActive},
		{ID: "g1", UserID: 1, Name: "Bike", TargetAmount: 90000, DurationMonths: 9, MonthlyRequirement: 10000, Status: models.GoalActive},
		{ID: "g3", UserID: 1, Name: "Laptop", TargetAmount: 120000, DurationMonths: 12, MonthlyRequirement: 10000, Status: models.GoalActive},
	}

	first := whatIf(args)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, whatIf(args))
	}
	require.True(t, strings.Index(first, `"Bike"`) < strings.Index(first, `"Laptop"`))
	assert.True(t, strings.Index(first, `"Laptop"`) < strings.Index(first, `"Trip"`))
}

func TestAffordabilityVerdicts(t *testing.T) {
	args := argsFixture() // savings 20000/month

	args.Message = "can i afford headphones for ₹5,000"
	assert.Contains(t, affordability(args), "Yes")

	args.Message = "can i afford a bike for ₹2 lakh"
	got := affordability(args)
	assert.Contains(t, got, "months")
}

func TestInrFormatting(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{50000, "₹50,000"},
		{120000, "₹1,20,000"},
		{12345678, "₹1,23,45,678"},
	}
	for _, tt := range tests {
		if got := inr(tt.value); got != tt.want {
			t.Fatalf("inr(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestGoalProgressNoGoals(t *testing.T) {
	args := argsFixture()
	got := goalProgress(args)
	require.True(t, strings.Contains(got, "create a goal"))
}
