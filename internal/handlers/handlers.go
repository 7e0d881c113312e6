// Package handlers is the HTTP surface over the conversation engine and the
// records store.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/akeef891/Finance-Clarity/internal/database"
	"github.com/akeef891/Finance-Clarity/internal/engine"
	"github.com/akeef891/Finance-Clarity/internal/goals"
	"github.com/akeef891/Finance-Clarity/internal/snapshot"
)

const userCookie = "fc_user_id"

type Handler struct {
	repo        *database.Repository
	engine      *engine.Engine
	builder     *snapshot.Builder
	planner     *goals.Planner
	log         *logrus.Logger
	defaultUser int64
}

func New(repo *database.Repository, eng *engine.Engine, builder *snapshot.Builder, planner *goals.Planner, log *logrus.Logger) (*Handler, error) {
	defaultUser, err := repo.EnsureDefaultUser()
	if err != nil {
		return nil, err
	}
	return &Handler{
		repo:        repo,
		engine:      eng,
		builder:     builder,
		planner:     planner,
		log:         log,
		defaultUser: defaultUser,
	}, nil
}

// currentUserID resolves the acting user from the cookie, falling back to
// the default single user when the cookie is missing or stale.
func (h *Handler) currentUserID(w http.ResponseWriter, r *http.Request) int64 {
	if cookie, err := r.Cookie(userCookie); err == nil {
		if id, err := strconv.ParseInt(cookie.Value, 10, 64); err == nil && id > 0 {
			if _, _, err := h.repo.GetUser(id); err == nil {
				return id
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    strconv.FormatInt(h.defaultUser, 10),
		Path:     "/",
		HttpOnly: false,
	})
	return h.defaultUser
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
