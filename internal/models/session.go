package models

import "time"

// Answer records one answered question inside a quiz session. A session holds
// at most one Answer per QuestionID; a later answer for the same question
// replaces the earlier one.
type Answer struct {
	QuestionID int    `json:"questionId"`
	Selected   string `json:"selected"`
	Correct    string `json:"correct"`
	IsCorrect  bool   `json:"isCorrect"`
}

// QuizSession is the transient state of one in-progress or completed quiz
// attempt for a phase. QuestionOrder is a permutation of [0, N) generated once
// when the session starts and persisted verbatim, so a resumed session sees
// the exact same ordering.
type QuizSession struct {
	QuestionOrder    []int      `json:"question_order"`
	SessionAnswers   []Answer   `json:"session_answers"`
	SessionScore     int        `json:"session_score"` // always count(IsCorrect) over SessionAnswers
	SessionStartTime *time.Time `json:"session_start_time"`
	SessionCompleted bool       `json:"session_completed"`
}

// AnswerFor returns the recorded answer for a question id, or nil.
func (s *QuizSession) AnswerFor(questionID int) *Answer {
	for i := range s.SessionAnswers {
		if s.SessionAnswers[i].QuestionID == questionID {
			return &s.SessionAnswers[i]
		}
	}
	return nil
}
