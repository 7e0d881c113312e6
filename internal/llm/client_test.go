package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeef891/Finance-Clarity/internal/models"
	"github.com/akeef891/Finance-Clarity/internal/snapshot"
)

func testSnapshot() *models.Snapshot {
	s := &models.Snapshot{
		Income:   100000,
		Expenses: 60000,
	}
	s.Recompute()
	s.Health = models.HealthHealthy
	s.HealthScore = 80
	return s
}

func TestGenerateSuccess(t *testing.T) {
	var got GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(GenerateResponse{Response: "  Your savings rate of 40% is healthy.  "})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, 10)
	reply, err := c.Generate(context.Background(), GenerateRequest{
		Message: "how am I doing?",
		Type:    TypeChat,
		Context: BuildContext(testSnapshot(), nil),
	})

	require.NoError(t, err)
	assert.Equal(t, "Your savings rate of 40% is healthy.", reply)
	assert.Equal(t, "how am I doing?", got.Message)
	assert.Equal(t, 100000.0, got.Context.Income)
}

func TestGenerateProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, 10)
	_, err := c.Generate(context.Background(), GenerateRequest{Message: "hi", Type: TypeChat})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGenerateRejectsShortReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateResponse{Response: "ok"})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, 10)
	_, err := c.Generate(context.Background(), GenerateRequest{Message: "hi", Type: TypeChat})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestGenerateRejectsEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateResponse{Response: "   "})
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, 0)
	_, err := c.Generate(context.Background(), GenerateRequest{Message: "hi", Type: TypeChat})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestGenerateNoEndpoint(t *testing.T) {
	c := NewClient("", time.Second, 10)
	_, err := c.Generate(context.Background(), GenerateRequest{Message: "hi", Type: TypeChat})
	require.Error(t, err)
}

func TestBuildContextFlags(t *testing.T) {
	s := &models.Snapshot{Income: 50000, Expenses: 65000}
	s.Recompute()
	s.HasTrend = true
	s.Trend.ExpenseDirection = models.TrendIncreasing

	ctx := BuildContext(s, nil)

	assert.True(t, ctx.Flags.Overspending)
	assert.True(t, ctx.Flags.HighExpenseRatio)
	assert.True(t, ctx.Flags.IncreasingTrend)
	assert.False(t, ctx.Flags.LowSavings)
	assert.Equal(t, "en", ctx.Language)
}

func TestBuildContextRatioFlagMatchesAlertBand(t *testing.T) {
	over := &models.Snapshot{Income: 100000, Expenses: 1000 * (snapshot.HighExpenseRatioPct + 0.1)}
	over.Recompute()
	assert.True(t, BuildContext(over, nil).Flags.HighExpenseRatio)

	under := &models.Snapshot{Income: 100000, Expenses: 1000 * (snapshot.HighExpenseRatioPct - 0.1)}
	under.Recompute()
	assert.False(t, BuildContext(under, nil).Flags.HighExpenseRatio)
}

func TestBuildContextLowSavings(t *testing.T) {
	s := &models.Snapshot{Income: 100000, Expenses: 95000}
	s.Recompute()

	ctx := BuildContext(s, nil)
	assert.True(t, ctx.Flags.LowSavings)
	assert.False(t, ctx.Flags.Overspending)
}

func TestBuildContextProfile(t *testing.T) {
	profile := models.DefaultProfile(1)
	profile.Language = "hi"
	profile.CurrentAlerts = []models.Alert{{Type: "overspending", Message: "Spending exceeded income this month"}}

	ctx := BuildContext(testSnapshot(), profile)

	assert.Equal(t, "hi", ctx.Language)
	require.Len(t, ctx.ActiveAlerts, 1)
	assert.Equal(t, "Spending exceeded income this month", ctx.ActiveAlerts[0])
	assert.Contains(t, ctx.UserMemory, "response_style")
}

func TestBuildContextCapsCategories(t *testing.T) {
	s := testSnapshot()
	for i := 0; i < 7; i++ {
		s.TopCategories = append(s.TopCategories, models.CategoryExpense{Name: "c", Amount: 100})
	}
	ctx := BuildContext(s, nil)
	assert.Len(t, ctx.TopCategories, 5)
}

func TestBuildPromptSelectsTemplate(t *testing.T) {
	ctx := BuildContext(testSnapshot(), nil)

	chat := BuildPrompt(GenerateRequest{Message: "hello", Type: TypeChat, Context: ctx}, 500)
	report := BuildPrompt(GenerateRequest{Message: "monthly report", Type: TypeReport, Context: ctx}, 900)

	assert.Contains(t, chat, "personal finance assistant")
	assert.Contains(t, chat, "under 500 characters")
	assert.Contains(t, report, "monthly summary")
	assert.Contains(t, report, "under 900 characters")
	assert.True(t, strings.Contains(chat, "income=100000.00"))
}
