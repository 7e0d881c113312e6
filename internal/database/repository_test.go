package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeef891/Finance-Clarity/internal/models"
)

func newTestRepo(t *testing.T) (*Repository, int64) {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	userID, err := repo.EnsureDefaultUser()
	require.NoError(t, err)
	return repo, userID
}

func addRecord(t *testing.T, repo *Repository, userID int64, recType, category string, amount float64, fixed bool, recordedAt string) {
	t.Helper()
	err := repo.CreateRecord(&models.FinanceRecord{
		UserID:     userID,
		Type:       recType,
		Category:   category,
		Amount:     amount,
		Fixed:      fixed,
		RecordedAt: recordedAt,
	})
	require.NoError(t, err)
}

func TestRecordAggregates(t *testing.T) {
	repo, userID := newTestRepo(t)

	addRecord(t, repo, userID, models.DirectionIncome, "salary", 100000, false, "2025-05-01")
	addRecord(t, repo, userID, models.DirectionExpense, "rent", 30000, true, "2025-05-02")
	addRecord(t, repo, userID, models.DirectionExpense, "food", 20000, false, "2025-05-03")
	addRecord(t, repo, userID, models.DirectionExpense, "food", 5000, false, "2025-05-10")

	income, err := repo.TotalIncome(userID)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, income)

	expenses, err := repo.TotalExpenses(userID)
	require.NoError(t, err)
	assert.Equal(t, 55000.0, expenses)

	fixed, err := repo.FixedExpenses(userID)
	require.NoError(t, err)
	assert.Equal(t, 30000.0, fixed)

	flexible, err := repo.FlexibleSpending(userID)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"food": 25000}, flexible)

	totals, err := repo.CategoryTotals(userID)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "rent", totals[0].Name, "largest category first")
	assert.True(t, totals[0].Fixed)
	assert.Equal(t, 25000.0, totals[1].Amount)
}

func TestMonthlyHistoryChronological(t *testing.T) {
	repo, userID := newTestRepo(t)

	addRecord(t, repo, userID, models.DirectionIncome, "salary", 90000, false, "2025-03-01")
	addRecord(t, repo, userID, models.DirectionExpense, "food", 40000, false, "2025-03-05")
	addRecord(t, repo, userID, models.DirectionIncome, "salary", 95000, false, "2025-04-01")
	addRecord(t, repo, userID, models.DirectionIncome, "salary", 100000, false, "2025-05-01")

	history, err := repo.MonthlyHistory(userID, 12)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2025-03", history[0].Month)
	assert.Equal(t, 40000.0, history[0].Expense)
	assert.Equal(t, "2025-05", history[2].Month)
}

func TestGoalRoundTrip(t *testing.T) {
	repo, userID := newTestRepo(t)

	goal := &models.Goal{
		ID:                 "01TESTGOAL",
		UserID:             userID,
		Name:               "Trip",
		TargetAmount:       50000,
		DurationMonths:     5,
		MonthlyRequirement: 10000,
		Status:             models.GoalActive,
		CreatedAt:          time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateGoal(goal))

	found, err := repo.FindActiveGoalByName(userID, "  tRiP ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, goal.ID, found.ID)

	found.AmountSaved = 50000
	found.CompletionPct = 100
	found.Status = models.GoalCompleted
	require.NoError(t, repo.SaveGoalProgress(found))

	// Completed goals no longer block the name.
	again, err := repo.FindActiveGoalByName(userID, "trip")
	require.NoError(t, err)
	assert.Nil(t, again)

	goals, err := repo.ListGoals(userID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, models.GoalCompleted, goals[0].Status)
}

func TestProfileRoundTrip(t *testing.T) {
	repo, userID := newTestRepo(t)

	profile, err := repo.GetProfile(userID)
	require.NoError(t, err)
	assert.Nil(t, profile, "no profile before first save")

	saved := models.DefaultProfile(userID)
	saved.Language = "hi"
	saved.CurrentAlerts = []models.Alert{{Type: models.AlertOverspending, Severity: models.SeverityCritical, Message: "spending exceeds income"}}
	require.NoError(t, repo.SaveProfile(saved))

	loaded, err := repo.GetProfile(userID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "hi", loaded.Language)
	require.Len(t, loaded.CurrentAlerts, 1)
	assert.Equal(t, models.AlertOverspending, loaded.CurrentAlerts[0].Type)

	// Upsert overwrites.
	saved.CurrentAlerts = nil
	require.NoError(t, repo.SaveProfile(saved))
	loaded, err = repo.GetProfile(userID)
	require.NoError(t, err)
	assert.Empty(t, loaded.CurrentAlerts)
}

func TestInteractionWindow(t *testing.T) {
	repo, userID := newTestRepo(t)
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		err := repo.AppendInteraction(userID, models.Interaction{
			Question:  "question",
			Response:  "response",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}, 3)
		require.NoError(t, err)
	}

	items, err := repo.ListInteractions(userID, 10)
	require.NoError(t, err)
	require.Len(t, items, 3, "window trimmed to keep")
	assert.True(t, items[0].Timestamp.Before(items[2].Timestamp), "oldest first")

	require.NoError(t, repo.ClearInteractions(userID))
	items, err = repo.ListInteractions(userID, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}
