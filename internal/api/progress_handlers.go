package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/no0bAuntor/vocab-app/internal/errors"
	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/models"
)

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("fetching progress snapshot")

	p, err := s.ProgressService.GetProgress(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit := queryInt(r, "limit", s.LeaderboardLimit)
	if limit > 100 {
		limit = 100
	}
	page := queryInt(r, "page", 1)

	log.Debug("fetching leaderboard: limit=%d page=%d", limit, page)

	entries, total, err := s.ProgressService.Leaderboard(r.Context(), limit, page)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"entries":     entries,
		"total_users": total,
		"page":        page,
		"limit":       limit,
	})
}

type achievementRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (s *Server) handleAddAchievement(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req achievementRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		handleError(w, r, errors.NewValidationError("id", "must not be empty"))
		return
	}

	log.Info("awarding achievement: id=%s", req.ID)

	p, err := s.ProgressService.AddAchievement(r.Context(), userFromContext(r.Context()), models.Achievement{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		DateEarned:  time.Now(),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, p)
}
