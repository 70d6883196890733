package api

import (
	"net/http"

	"github.com/no0bAuntor/vocab-app/internal/errors"
	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/models"
)

// handleQuestions serves the wordbank content for a phase. The phase must be
// unlocked for the caller; content for locked phases is not leaked.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	phase, err := phaseParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	p, err := s.ProgressService.GetProgress(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !p.IsPhaseUnlocked(phase) {
		handleError(w, r, errors.NewPhaseLockedError(phase))
		return
	}

	var questions []models.Question
	if s.Wordbank != nil {
		questions = s.Wordbank.Questions(phase)
	}
	if questions == nil {
		questions = []models.Question{}
	}

	log.Debug("serving %d questions for phase %d", len(questions), phase)
	writeJSON(w, r, http.StatusOK, map[string]any{
		"phase":     phase,
		"questions": questions,
		"count":     len(questions),
	})
}
