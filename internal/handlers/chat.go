package handlers

import (
	"encoding/json"
	"net/http"
)

// ChatRequest is the incoming conversation message.
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := h.currentUserID(w, r)
	reply := h.engine.Process(r.Context(), userID, req.Message)
	respondJSON(w, http.StatusOK, reply)
}

// ChatHistory handles GET /api/chat/history.
func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)

	interactions, err := h.engine.History(userID)
	if err != nil {
		h.log.WithError(err).Error("history load failed")
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"interactions": interactions,
	})
}

// ClearChatHistory handles DELETE /api/chat/history. The memory profile and
// goals survive.
func (h *Handler) ClearChatHistory(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)

	if err := h.engine.ClearHistory(userID); err != nil {
		h.log.WithError(err).Error("history clear failed")
		respondError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Suggestions handles GET /api/chat/suggestions.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID := h.currentUserID(w, r)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": h.engine.SuggestedQuestions(userID),
	})
}
