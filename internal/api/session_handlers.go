package api

import (
	"net/http"

	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/models"
	"github.com/no0bAuntor/vocab-app/internal/progression"
)

// sessionTotal decides how many questions a session for this phase covers:
// wordbank content when loaded, otherwise the stock size.
func (s *Server) sessionTotal(phase int) int {
	if s.Wordbank != nil {
		if n := s.Wordbank.Count(phase); n > 0 {
			return n
		}
	}
	return progression.DefaultQuestionsTotal
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	phase, err := phaseParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("start-or-resume session: phase=%d", phase)

	state, err := s.ProgressService.StartOrResumeSession(r.Context(), userFromContext(r.Context()), phase, s.sessionTotal(phase))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

type answerRequest struct {
	QuestionID int    `json:"questionId"`
	Selected   string `json:"selected"`
	Correct    string `json:"correct"`
	IsCorrect  bool   `json:"isCorrect"`
}

func (s *Server) handleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	phase, err := phaseParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("saving answer: phase=%d question=%d correct=%t", phase, req.QuestionID, req.IsCorrect)

	p, err := s.ProgressService.SaveAnswer(r.Context(), userFromContext(r.Context()), phase, models.Answer{
		QuestionID: req.QuestionID,
		Selected:   req.Selected,
		Correct:    req.Correct,
		IsCorrect:  req.IsCorrect,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"session": p.Session(phase),
	})
}

type completeRequest struct {
	FinalScore     int `json:"finalScore"`
	QuestionsTotal int `json:"questionsTotal"`
}

func (s *Server) handleCompleteQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	phase, err := phaseParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req completeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.QuestionsTotal <= 0 {
		req.QuestionsTotal = s.sessionTotal(phase)
	}

	log.Info("completing quiz: phase=%d score=%d total=%d", phase, req.FinalScore, req.QuestionsTotal)

	result, err := s.ProgressService.CompleteQuiz(r.Context(), userFromContext(r.Context()), phase, req.FinalScore, req.QuestionsTotal)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if result.UnlockedNewPhase > 0 {
		log.Info("phase unlocked: phase=%d", result.UnlockedNewPhase)
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	phase, err := phaseParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("resetting session: phase=%d", phase)

	if _, err := s.ProgressService.ResetSession(r.Context(), userFromContext(r.Context()), phase); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"reset": true, "phase": phase})
}
