package models

import "time"

// QuizAttempt is an immutable record of one completed quiz. Only capacity
// eviction ever removes an attempt.
type QuizAttempt struct {
	Phase          int       `json:"phase"`
	Score          int       `json:"score"`
	QuestionsTotal int       `json:"questions_total"`
	Percentage     int       `json:"percentage"` // round(score/questionsTotal*100)
	CompletedAt    time.Time `json:"completed_at"`
}

// HistoryPage is one page of quiz history, newest first.
type HistoryPage struct {
	Items       []QuizAttempt `json:"items"`
	TotalCount  int           `json:"total_count"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	HasMore     bool          `json:"has_more"`
}
