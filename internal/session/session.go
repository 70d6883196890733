package session

import (
	"math/rand"
	"time"

	"github.com/no0bAuntor/vocab-app/internal/models"
)

// Start returns the session to use for a phase. A non-completed existing
// session is returned unchanged so a reload resumes with the identical
// question order. A session that exists but has no usable order (it was
// created lazily by an answer save, or the phase's question count changed)
// keeps its answers and gets a fresh order. Otherwise a brand new session is
// created with a uniformly random permutation of [0, totalQuestions).
func Start(existing *models.QuizSession, totalQuestions int, now time.Time) (*models.QuizSession, bool) {
	if existing != nil && !existing.SessionCompleted {
		if len(existing.QuestionOrder) != totalQuestions {
			existing.QuestionOrder = rand.Perm(totalQuestions)
		}
		if existing.SessionStartTime == nil {
			start := now
			existing.SessionStartTime = &start
		}
		return existing, true
	}
	start := now
	return &models.QuizSession{
		QuestionOrder:    rand.Perm(totalQuestions),
		SessionAnswers:   []models.Answer{},
		SessionScore:     0,
		SessionStartTime: &start,
		SessionCompleted: false,
	}, false
}

// RecordAnswer stores an answer in the session. An existing answer for the
// same question id is replaced in place, never duplicated, and the score is
// recomputed from the full answer list. That makes duplicate or out-of-order
// saves harmless: the authoritative score cannot drift from the answers.
func RecordAnswer(s *models.QuizSession, a models.Answer) {
	replaced := false
	for i := range s.SessionAnswers {
		if s.SessionAnswers[i].QuestionID == a.QuestionID {
			s.SessionAnswers[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		s.SessionAnswers = append(s.SessionAnswers, a)
	}
	s.SessionScore = Score(s)
}

// Score counts the correct answers in the session. This is the only
// legitimate way to derive a session score while the quiz is in progress.
func Score(s *models.QuizSession) int {
	n := 0
	for _, a := range s.SessionAnswers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// ResumePoint is the number of answered questions. The UI presents the
// question at this session-relative index next.
func ResumePoint(s *models.QuizSession) int {
	if s == nil {
		return 0
	}
	return len(s.SessionAnswers)
}

// Complete marks the session finished with the caller-confirmed final score.
// Callers that trigger completion side effects must gate on the
// SessionCompleted transition, not on this call, so repeats cannot
// double-count.
func Complete(s *models.QuizSession, finalScore int) {
	s.SessionCompleted = true
	s.SessionScore = finalScore
}

// Reset wipes the session back to its empty defaults. The next Start
// generates a brand new random order.
func Reset(s *models.QuizSession) {
	s.QuestionOrder = nil
	s.SessionAnswers = []models.Answer{}
	s.SessionScore = 0
	s.SessionStartTime = nil
	s.SessionCompleted = false
}
