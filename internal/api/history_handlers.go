package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/no0bAuntor/vocab-app/internal/errors"
	"github.com/no0bAuntor/vocab-app/internal/logger"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	pageSize := queryInt(r, "page_size", s.HistoryPageSize)
	if pageSize > 100 {
		pageSize = 100
	}
	page := queryInt(r, "page", 1)

	log.Debug("fetching quiz history: page=%d page_size=%d", page, pageSize)

	result, err := s.ProgressService.History(r.Context(), userFromContext(r.Context()), pageSize, page)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

var exportHeader = []any{"Phase", "Score", "Questions", "Percentage", "Completed At"}

// handleHistoryExport streams the user's full quiz history as an xlsx
// workbook, newest attempt first.
func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	p, err := s.ProgressService.GetProgress(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "History"
	f.SetSheetName("Sheet1", sheet)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	for i := len(p.QuizHistory) - 1; i >= 0; i-- {
		attempt := p.QuizHistory[i]
		row := []any{
			attempt.Phase,
			attempt.Score,
			attempt.QuestionsTotal,
			attempt.Percentage,
			attempt.CompletedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", len(p.QuizHistory)-i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			handleError(w, r, errors.NewInternalError(err))
			return
		}
	}

	log.Info("exporting %d history rows", len(p.QuizHistory))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="quiz_history.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error("failed to write export: %v", err)
	}
}
