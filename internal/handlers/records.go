package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/akeef891/Finance-Clarity/internal/models"
)

// RecordRequest is the payload for creating one income or expense entry.
type RecordRequest struct {
	Type        string  `json:"type"` // income | expense
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Fixed       bool    `json:"fixed"`
	Description string  `json:"description"`
	RecordedAt  string  `json:"recorded_at"` // YYYY-MM-DD, defaults to today
}

// CreateRecord handles POST /api/records.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if req.Type != models.DirectionIncome && req.Type != models.DirectionExpense {
		respondError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	if req.RecordedAt == "" {
		req.RecordedAt = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", req.RecordedAt); err != nil {
		respondError(w, http.StatusBadRequest, "recorded_at must be YYYY-MM-DD")
		return
	}
	if req.Category == "" {
		req.Category = "other"
	}

	rec := &models.FinanceRecord{
		UserID:      h.currentUserID(w, r),
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Fixed:       req.Fixed,
		Description: req.Description,
		RecordedAt:  req.RecordedAt,
	}
	if err := h.repo.CreateRecord(rec); err != nil {
		h.log.WithError(err).Error("record create failed")
		respondError(w, http.StatusInternalServerError, "failed to create record")
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// ListRecords handles GET /api/records.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records, err := h.repo.ListRecords(userID, limit)
	if err != nil {
		h.log.WithError(err).Error("record list failed")
		respondError(w, http.StatusInternalServerError, "failed to load records")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
	})
}
