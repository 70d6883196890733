package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/models"
)

// SessionController drives a quiz UI for one phase against the remote
// progress API. It keeps a local mirror of the session so the UI stays
// responsive when a save fails in flight: answers recorded locally survive
// a transport error and the next successful save brings the server back in
// step.
type SessionController struct {
	api   ProgressAPI
	phase int
	log   *logger.Logger

	mu        sync.Mutex
	sess      *models.QuizSession
	current   int
	completed bool
	lastDone  *CompletionResult
}

func NewSessionController(api ProgressAPI, phase int) *SessionController {
	return &SessionController{
		api:   api,
		phase: phase,
		log:   logger.Default().WithPrefix("controller").WithField("phase", phase),
	}
}

// Load fetches or resumes the session and positions the cursor at the resume
// point, the first unanswered question in session order.
func (c *SessionController) Load(ctx context.Context) error {
	state, err := c.api.StartOrResumeSession(ctx, c.phase)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess = state.Session
	c.completed = state.Session != nil && state.Session.SessionCompleted
	c.lastDone = nil
	c.current = state.ResumePoint
	if n := c.questionCount(); c.current >= n && n > 0 {
		c.current = n - 1
	}

	if state.IsResuming {
		c.log.Info("resumed session at question %d of %d", c.current, c.questionCount())
	} else {
		c.log.Info("started fresh session with %d questions", c.questionCount())
	}
	return nil
}

// caller holds c.mu
func (c *SessionController) questionCount() int {
	if c.sess == nil {
		return 0
	}
	return len(c.sess.QuestionOrder)
}

// Current returns the cursor position within the session's question order.
func (c *SessionController) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CurrentQuestionID returns the question id the cursor points at, or -1 when
// no session is loaded.
func (c *SessionController) CurrentQuestionID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil || c.current >= len(c.sess.QuestionOrder) {
		return -1
	}
	return c.sess.QuestionOrder[c.current]
}

// Answered returns how many questions have a recorded answer.
func (c *SessionController) Answered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return 0
	}
	return len(c.sess.SessionAnswers)
}

// Score returns the locally tracked session score.
func (c *SessionController) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return 0
	}
	return c.sess.SessionScore
}

// Answer records one answer, locally first and then remotely. A revisited
// question replaces its earlier answer. On transport failure the local state
// is kept and the error surfaced so the caller can retry without losing the
// answer.
func (c *SessionController) Answer(ctx context.Context, answer models.Answer) error {
	c.mu.Lock()
	if c.sess == nil {
		c.mu.Unlock()
		return fmt.Errorf("no session loaded")
	}
	if c.completed {
		c.mu.Unlock()
		return fmt.Errorf("session already completed")
	}
	c.recordLocal(answer)
	c.mu.Unlock()

	remote, err := c.api.SaveAnswer(ctx, c.phase, answer)
	if err != nil {
		c.log.Warn("save failed, keeping local answer for question %d: %v", answer.QuestionID, err)
		return err
	}

	c.mu.Lock()
	if remote != nil {
		c.sess = remote
	}
	c.mu.Unlock()
	return nil
}

// caller holds c.mu
func (c *SessionController) recordLocal(answer models.Answer) {
	replaced := false
	for i := range c.sess.SessionAnswers {
		if c.sess.SessionAnswers[i].QuestionID == answer.QuestionID {
			c.sess.SessionAnswers[i] = answer
			replaced = true
			break
		}
	}
	if !replaced {
		c.sess.SessionAnswers = append(c.sess.SessionAnswers, answer)
	}

	score := 0
	for _, a := range c.sess.SessionAnswers {
		if a.IsCorrect {
			score++
		}
	}
	c.sess.SessionScore = score
}

// Next advances the cursor, reporting false at the end of the order.
func (c *SessionController) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil || c.current+1 >= len(c.sess.QuestionOrder) {
		return false
	}
	c.current++
	return true
}

// JumpTo moves the cursor to any already-reached index so the user can revise
// an earlier answer. Indices beyond the next unanswered question are out of
// reach.
func (c *SessionController) JumpTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return fmt.Errorf("no session loaded")
	}
	if index < 0 || index >= len(c.sess.QuestionOrder) {
		return fmt.Errorf("question index %d out of range", index)
	}
	if index > len(c.sess.SessionAnswers) {
		return fmt.Errorf("question index %d not yet reached", index)
	}
	c.current = index
	return nil
}

// Finish completes the quiz exactly once. Duplicate triggers, a double tap or
// a re-render, return the first result instead of calling out again.
func (c *SessionController) Finish(ctx context.Context) (*CompletionResult, error) {
	c.mu.Lock()
	if c.sess == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("no session loaded")
	}
	if c.completed {
		result := c.lastDone
		c.mu.Unlock()
		c.log.Debug("duplicate finish trigger ignored")
		return result, nil
	}
	finalScore := c.sess.SessionScore
	total := len(c.sess.QuestionOrder)
	c.mu.Unlock()

	result, err := c.api.CompleteQuiz(ctx, c.phase, finalScore, total)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.completed = true
	c.lastDone = result
	if c.sess != nil {
		c.sess.SessionCompleted = true
	}
	c.mu.Unlock()

	c.log.Info("quiz completed: score=%d/%d", finalScore, total)
	return result, nil
}

// Restart resets the session remotely and wipes local state. Local state is
// wiped even when the remote reset fails so a stuck session never pins the
// UI; the next Load starts clean.
func (c *SessionController) Restart(ctx context.Context) error {
	err := c.api.ResetSession(ctx, c.phase)

	c.mu.Lock()
	c.sess = nil
	c.current = 0
	c.completed = false
	c.lastDone = nil
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("remote reset failed, local state cleared anyway: %v", err)
	}
	return err
}
