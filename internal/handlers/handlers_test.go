package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeef891/Finance-Clarity/internal/config"
	"github.com/akeef891/Finance-Clarity/internal/database"
	"github.com/akeef891/Finance-Clarity/internal/engine"
	"github.com/akeef891/Finance-Clarity/internal/goals"
	"github.com/akeef891/Finance-Clarity/internal/snapshot"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := database.NewRepository(db)
	builder := snapshot.NewBuilder(repo, log)
	planner := goals.NewPlanner(repo)

	cfg := &config.Config{
		AITimeout:             time.Second,
		AIMessageLenThreshold: 60,
		RateLimitWindow:       60 * time.Second,
		RateLimitMax:          100,
		HistoryWindow:         20,
		ContextWindow:         5,
		MaxResponseChars:      1500,
	}
	eng := engine.New(cfg, log, repo, builder, planner, nil)

	h, err := New(repo, eng, builder, planner, log)
	require.NoError(t, err)
	return h
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestCreateAndListRecords(t *testing.T) {
	h := newTestHandler(t)

	w := doJSON(t, h.CreateRecord, http.MethodPost, "/api/records", RecordRequest{
		Type:     "income",
		Category: "salary",
		Amount:   100000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, h.CreateRecord, http.MethodPost, "/api/records", RecordRequest{
		Type:   "expense",
		Amount: -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h.ListRecords, http.MethodGet, "/api/records", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Records []struct {
			Category string  `json:"category"`
			Amount   float64 `json:"amount"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "salary", resp.Records[0].Category)
}

func TestChatEndToEnd(t *testing.T) {
	h := newTestHandler(t)

	w := doJSON(t, h.CreateRecord, http.MethodPost, "/api/records", RecordRequest{
		Type: "income", Category: "salary", Amount: 100000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, h.CreateRecord, http.MethodPost, "/api/records", RecordRequest{
		Type: "expense", Category: "rent", Amount: 30000, Fixed: true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, h.Chat, http.MethodPost, "/api/chat", ChatRequest{Message: "how is my financial health?"})
	require.Equal(t, http.StatusOK, w.Code)

	var reply struct {
		Response string `json:"response"`
		Intent   string `json:"intent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "FINANCIAL_HEALTH", reply.Intent)
	assert.NotEmpty(t, reply.Response)

	w = doJSON(t, h.ChatHistory, http.MethodGet, "/api/chat/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "how is my financial health?")

	w = doJSON(t, h.ClearChatHistory, http.MethodDelete, "/api/chat/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h.ChatHistory, http.MethodGet, "/api/chat/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "financial health?\"")
}

func TestGoalEndpoints(t *testing.T) {
	h := newTestHandler(t)

	w := doJSON(t, h.CreateGoal, http.MethodPost, "/api/goals", GoalRequest{
		Name: "Trip", TargetAmount: 50000, DurationMonths: 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate names among active goals are rejected.
	w = doJSON(t, h.CreateGoal, http.MethodPost, "/api/goals", GoalRequest{
		Name: "trip", TargetAmount: 1000, DurationMonths: 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h.ListGoals, http.MethodGet, "/api/goals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Goals []struct {
			Name               string  `json:"name"`
			MonthlyRequirement float64 `json:"monthly_requirement"`
		} `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Goals, 1)
	assert.Equal(t, 10000.0, resp.Goals[0].MonthlyRequirement)
}

func TestSuggestionsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	w := doJSON(t, h.Suggestions, http.MethodGet, "/api/chat/suggestions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, len(resp.Suggestions), 2)
	assert.LessOrEqual(t, len(resp.Suggestions), 4)
}

func TestGetSnapshot(t *testing.T) {
	h := newTestHandler(t)

	w := doJSON(t, h.CreateRecord, http.MethodPost, "/api/records", RecordRequest{
		Type: "income", Category: "salary", Amount: 100000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, h.CreateRecord, http.MethodPost, "/api/records", RecordRequest{
		Type: "expense", Category: "food", Amount: 60000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, h.GetSnapshot, http.MethodGet, "/api/snapshot", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap struct {
		Income      float64 `json:"income"`
		SavingsRate float64 `json:"savings_rate"`
		Health      string  `json:"health"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 100000.0, snap.Income)
	assert.InDelta(t, 40.0, snap.SavingsRate, 0.001)
	assert.Equal(t, "Healthy", snap.Health)
}
