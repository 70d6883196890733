package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.userMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/progress", s.handleGetProgress)
		r.Get("/progress/leaderboard", s.handleLeaderboard)
		r.Post("/progress/achievements", s.handleAddAchievement)

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/history", s.handleHistory)
			r.Get("/history/export", s.handleHistoryExport)

			r.Route("/{phase}/session", func(r chi.Router) {
				r.Get("/", s.handleSession)
				r.Post("/answers", s.handleSaveAnswer)
				r.Post("/complete", s.handleCompleteQuiz)
				r.Post("/reset", s.handleResetSession)
			})
		})

		r.Get("/phases/{phase}/questions", s.handleQuestions)
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	return r
}
