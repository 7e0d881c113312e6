package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// GetSnapshot handles GET /api/snapshot.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)
	respondJSON(w, http.StatusOK, h.builder.Build(userID))
}

// GoalRequest is the payload for creating a goal outside the chat flow.
type GoalRequest struct {
	Name           string  `json:"name"`
	TargetAmount   float64 `json:"target_amount"`
	DurationMonths int     `json:"duration_months"`
}

// CreateGoal handles POST /api/goals.
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := h.currentUserID(w, r)
	goal, err := h.planner.Create(userID, req.Name, req.TargetAmount, req.DurationMonths)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// ListGoals handles GET /api/goals. Progress is recomputed against the live
// snapshot before returning.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)

	snap := h.builder.Build(userID)
	goals, err := h.planner.Refresh(userID, snap, time.Now())
	if err != nil {
		h.log.WithError(err).Error("goal refresh failed")
		respondError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"goals": goals,
	})
}
