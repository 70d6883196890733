package history

import (
	"sort"

	"github.com/no0bAuntor/vocab-app/internal/models"
	"github.com/no0bAuntor/vocab-app/internal/progression"
)

// Append adds an attempt to the progress record's history. When the cap is
// exceeded the oldest entries (lowest indices) are dropped until exactly
// progression.HistoryCap remain.
func Append(p *models.UserProgress, attempt models.QuizAttempt) {
	p.QuizHistory = append(p.QuizHistory, attempt)
	if excess := len(p.QuizHistory) - progression.HistoryCap; excess > 0 {
		p.QuizHistory = append([]models.QuizAttempt(nil), p.QuizHistory[excess:]...)
	}
}

// Page returns one page of history sorted by completion time descending.
// It is a pure projection: the input slice is never mutated.
func Page(attempts []models.QuizAttempt, pageSize, pageNumber int) models.HistoryPage {
	if pageSize < 1 {
		pageSize = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	sorted := append([]models.QuizAttempt(nil), attempts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})

	total := len(sorted)
	totalPages := (total + pageSize - 1) / pageSize
	start := (pageNumber - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return models.HistoryPage{
		Items:       sorted[start:end],
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: pageNumber,
		HasMore:     end < total,
	}
}
