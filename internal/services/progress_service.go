package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/no0bAuntor/vocab-app/internal/errors"
	"github.com/no0bAuntor/vocab-app/internal/history"
	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/models"
	"github.com/no0bAuntor/vocab-app/internal/progression"
	"github.com/no0bAuntor/vocab-app/internal/repository"
	"github.com/no0bAuntor/vocab-app/internal/session"
)

// maxSaveAttempts bounds the reload-and-retry loop on optimistic-concurrency
// conflicts. Concurrent writers for one user are rare (a single active
// device), so one retry almost always suffices.
const maxSaveAttempts = 3

// CompletionResult is the outcome of CompleteQuiz.
type CompletionResult struct {
	Progress         *models.UserProgress `json:"-"`
	Phase            int                  `json:"phase"`
	FinalScore       int                  `json:"final_score"`
	PreviousBest     int                  `json:"previous_best"`
	UnlockedNewPhase int                  `json:"unlocked_new_phase"` // 0 = nothing unlocked
	TotalXP          int                  `json:"total_xp"`
	Level            int                  `json:"level"`
	UnlockedPhases   []int                `json:"unlocked_phases"`
	AlreadyCompleted bool                 `json:"already_completed"`
}

// SessionState is the outcome of StartOrResumeSession.
type SessionState struct {
	Progress    *models.UserProgress `json:"-"`
	Phase       int                  `json:"phase"`
	Session     *models.QuizSession  `json:"session"`
	IsResuming  bool                 `json:"is_resuming"`
	ResumePoint int                  `json:"resume_point"`
}

// ProgressService is the single entry point for everything that touches a
// user's progression record. Every write is one read-modify-write of the
// whole document so the score, history and unlock updates land together.
type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*models.UserProgress, error)
	StartOrResumeSession(ctx context.Context, userID string, phase, totalQuestions int) (*SessionState, error)
	SaveAnswer(ctx context.Context, userID string, phase int, answer models.Answer) (*models.UserProgress, error)
	CompleteQuiz(ctx context.Context, userID string, phase, finalScore, questionsTotal int) (*CompletionResult, error)
	ResetSession(ctx context.Context, userID string, phase int) (*models.UserProgress, error)
	AddAchievement(ctx context.Context, userID string, achievement models.Achievement) (*models.UserProgress, error)
	History(ctx context.Context, userID string, pageSize, pageNumber int) (models.HistoryPage, error)
	Leaderboard(ctx context.Context, limit, page int) ([]models.LeaderboardEntry, int, error)
}

type progressService struct {
	repo        repository.ProgressRepository
	leaderboard repository.LeaderboardRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(repo repository.ProgressRepository, leaderboard repository.LeaderboardRepository) ProgressService {
	return &progressService{repo: repo, leaderboard: leaderboard}
}

// errNoChange signals from an update closure that nothing was mutated and the
// save should be skipped. Used to keep idempotent calls write-free.
var errNoChange = stderrors.New("no change")

// load fetches the user's progress, creating the default document on first
// contact (phase 1 unlocked, everything zero).
func (s *progressService) load(ctx context.Context, userID string) (*models.UserProgress, error) {
	log := logger.FromContext(ctx)

	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if p != nil {
		return p, nil
	}

	log.Debug("creating default progress: user_id=%s", userID)
	p = models.NewUserProgress(userID, time.Now())
	if err := s.repo.Create(ctx, p); err != nil {
		if stderrors.Is(err, repository.ErrVersionConflict) {
			// Lost a create race; the winner's record is authoritative.
			p, err = s.repo.Get(ctx, userID)
			if err != nil || p == nil {
				return nil, errors.NewInternalError(err)
			}
			return p, nil
		}
		log.Error("failed to create progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return p, nil
}

// update runs fn against a freshly loaded document and saves the result,
// retrying on version conflicts. Domain errors from fn abort without writing.
func (s *progressService) update(ctx context.Context, userID string, fn func(p *models.UserProgress) error) (*models.UserProgress, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		p, err := s.load(ctx, userID)
		if err != nil {
			return nil, err
		}

		if err := fn(p); err != nil {
			if stderrors.Is(err, errNoChange) {
				return p, nil
			}
			return nil, err
		}

		p.UpdatedAt = time.Now()
		err = s.repo.Save(ctx, p)
		if err == nil {
			return p, nil
		}
		if !stderrors.Is(err, repository.ErrVersionConflict) {
			log.Error("failed to save progress: %v", err)
			return nil, errors.NewInternalError(err)
		}
		log.Warn("progress write conflict for user %s, retrying (attempt %d/%d)", userID, attempt, maxSaveAttempts)
	}
	return nil, errors.NewConflictError(userID)
}

func validateUser(userID string) error {
	if userID == "" {
		return errors.NewValidationError("user_id", "must not be empty")
	}
	return nil
}

// requirePhase rejects out-of-range phases before any record is touched.
func requirePhase(phase int) error {
	if !progression.ValidPhase(phase) {
		return errors.NewInvalidPhaseError(phase)
	}
	return nil
}

func requireUnlocked(p *models.UserProgress, phase int) error {
	if !p.IsPhaseUnlocked(phase) {
		return errors.NewPhaseLockedError(phase)
	}
	return nil
}

func (s *progressService) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	return s.load(ctx, userID)
}

func (s *progressService) StartOrResumeSession(ctx context.Context, userID string, phase, totalQuestions int) (*SessionState, error) {
	log := logger.FromContext(ctx)
	log.Debug("start-or-resume session: user_id=%s, phase=%d, total=%d", userID, phase, totalQuestions)

	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if err := requirePhase(phase); err != nil {
		return nil, err
	}
	if totalQuestions <= 0 {
		totalQuestions = progression.DefaultQuestionsTotal
	}

	var state SessionState
	p, err := s.update(ctx, userID, func(p *models.UserProgress) error {
		if err := requireUnlocked(p, phase); err != nil {
			return err
		}

		existing := p.Session(phase)
		untouched := existing != nil && !existing.SessionCompleted &&
			len(existing.QuestionOrder) == totalQuestions && existing.SessionStartTime != nil

		sess, kept := session.Start(existing, totalQuestions, time.Now())
		state = SessionState{
			Phase:       phase,
			Session:     sess,
			IsResuming:  kept && len(sess.SessionAnswers) > 0,
			ResumePoint: session.ResumePoint(sess),
		}
		if untouched {
			// The stored session came back verbatim; skip the write.
			return errNoChange
		}
		p.SetSession(phase, sess)
		return nil
	})
	if err != nil {
		return nil, err
	}
	state.Progress = p
	return &state, nil
}

func (s *progressService) SaveAnswer(ctx context.Context, userID string, phase int, answer models.Answer) (*models.UserProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("saving answer: user_id=%s, phase=%d, question_id=%d", userID, phase, answer.QuestionID)

	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if err := requirePhase(phase); err != nil {
		return nil, err
	}
	if answer.QuestionID < 0 {
		return nil, errors.NewValidationError("questionId", "must be non-negative")
	}

	return s.update(ctx, userID, func(p *models.UserProgress) error {
		if err := requireUnlocked(p, phase); err != nil {
			return err
		}

		sess := p.Session(phase)
		if sess == nil {
			// First answer before an explicit start; the session is created
			// lazily and picks up a question order on the next start call.
			now := time.Now()
			sess = &models.QuizSession{SessionStartTime: &now}
			p.SetSession(phase, sess)
		}
		if sess.SessionCompleted {
			return errors.NewValidationError("session", "session is already completed; reset to try again")
		}
		session.RecordAnswer(sess, answer)
		return nil
	})
}

func (s *progressService) CompleteQuiz(ctx context.Context, userID string, phase, finalScore, questionsTotal int) (*CompletionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing quiz: user_id=%s, phase=%d, score=%d/%d", userID, phase, finalScore, questionsTotal)

	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if err := requirePhase(phase); err != nil {
		return nil, err
	}
	if finalScore < 0 {
		return nil, errors.NewValidationError("finalScore", "must be non-negative")
	}
	if questionsTotal <= 0 {
		questionsTotal = progression.DefaultQuestionsTotal
	}

	var result CompletionResult
	p, err := s.update(ctx, userID, func(p *models.UserProgress) error {
		if err := requireUnlocked(p, phase); err != nil {
			return err
		}

		sess := p.Session(phase)
		if sess != nil && sess.SessionCompleted {
			// The completion side effects already ran; repeating them would
			// double-count XP and history. Report the recorded state.
			result = CompletionResult{
				Phase:            phase,
				FinalScore:       sess.SessionScore,
				PreviousBest:     p.PhaseScores[phase],
				TotalXP:          p.TotalXP,
				Level:            p.Level,
				UnlockedPhases:   p.UnlockedPhases,
				AlreadyCompleted: true,
			}
			return errNoChange
		}
		if sess == nil {
			sess = &models.QuizSession{}
			p.SetSession(phase, sess)
		}

		now := time.Now()
		previousBest := p.PhaseScores[phase]

		session.Complete(sess, finalScore)
		unlocked := progression.ApplyPhaseResult(p, phase, finalScore, questionsTotal, now)
		history.Append(p, models.QuizAttempt{
			Phase:          phase,
			Score:          finalScore,
			QuestionsTotal: questionsTotal,
			Percentage:     progression.Percentage(finalScore, questionsTotal),
			CompletedAt:    now,
		})

		result = CompletionResult{
			Phase:            phase,
			FinalScore:       finalScore,
			PreviousBest:     previousBest,
			UnlockedNewPhase: unlocked,
			TotalXP:          p.TotalXP,
			Level:            p.Level,
			UnlockedPhases:   p.UnlockedPhases,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Progress = p
	if result.UnlockedNewPhase != 0 {
		log.Info("phase %d unlocked for user %s", result.UnlockedNewPhase, userID)
	}
	return &result, nil
}

func (s *progressService) ResetSession(ctx context.Context, userID string, phase int) (*models.UserProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("resetting session: user_id=%s, phase=%d", userID, phase)

	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if err := requirePhase(phase); err != nil {
		return nil, err
	}

	return s.update(ctx, userID, func(p *models.UserProgress) error {
		if err := requireUnlocked(p, phase); err != nil {
			return err
		}
		sess := p.Session(phase)
		if sess == nil {
			return errNoChange
		}
		session.Reset(sess)
		return nil
	})
}

func (s *progressService) AddAchievement(ctx context.Context, userID string, achievement models.Achievement) (*models.UserProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding achievement: user_id=%s, id=%s", userID, achievement.ID)

	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if achievement.ID == "" {
		return nil, errors.NewValidationError("id", "must not be empty")
	}
	if achievement.Name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}
	if achievement.Icon == "" {
		achievement.Icon = "🏆"
	}
	if achievement.DateEarned.IsZero() {
		achievement.DateEarned = time.Now()
	}

	return s.update(ctx, userID, func(p *models.UserProgress) error {
		if p.HasAchievement(achievement.ID) {
			return errors.NewDuplicateAchievementError(achievement.ID)
		}
		p.Achievements = append(p.Achievements, achievement)
		return nil
	})
}

func (s *progressService) History(ctx context.Context, userID string, pageSize, pageNumber int) (models.HistoryPage, error) {
	if err := validateUser(userID); err != nil {
		return models.HistoryPage{}, err
	}
	p, err := s.load(ctx, userID)
	if err != nil {
		return models.HistoryPage{}, err
	}
	return history.Page(p.QuizHistory, pageSize, pageNumber), nil
}

func (s *progressService) Leaderboard(ctx context.Context, limit, page int) ([]models.LeaderboardEntry, int, error) {
	log := logger.FromContext(ctx)

	if limit < 1 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	entries, err := s.leaderboard.Top(ctx, limit, offset)
	if err != nil {
		log.Error("failed to fetch leaderboard: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.leaderboard.CountUsers(ctx)
	if err != nil {
		log.Error("failed to count users: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return entries, total, nil
}
