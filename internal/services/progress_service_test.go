package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/no0bAuntor/vocab-app/internal/errors"
	"github.com/no0bAuntor/vocab-app/internal/models"
	"github.com/no0bAuntor/vocab-app/internal/repository"
	"github.com/no0bAuntor/vocab-app/internal/services"
	"github.com/no0bAuntor/vocab-app/internal/testutil/mocks"
)

func newService(repo *mocks.MockProgressRepository) services.ProgressService {
	return services.NewProgressService(repo, &mocks.MockLeaderboardRepository{})
}

func progressWith(userID string, phases ...int) *models.UserProgress {
	p := models.NewUserProgress(userID, time.Now())
	for _, ph := range phases {
		if !p.IsPhaseUnlocked(ph) {
			p.UnlockedPhases = append(p.UnlockedPhases, ph)
		}
	}
	return p
}

func TestGetProgress_CreatesDefaultOnFirstContact(t *testing.T) {
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(nil, nil).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.UserProgress")).Return(nil).Once()

	svc := newService(repo)
	p, err := svc.GetProgress(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, []int{1}, p.UnlockedPhases)
	assert.Equal(t, 1, p.Level)
	assert.Zero(t, p.TotalXP)
	repo.AssertExpectations(t)
}

func TestGetProgress_CreateRaceLoadsWinner(t *testing.T) {
	winner := progressWith("u1")
	winner.TotalXP = 30

	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(nil, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict).Once()
	repo.On("Get", mock.Anything, "u1").Return(winner, nil).Once()

	svc := newService(repo)
	p, err := svc.GetProgress(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, 30, p.TotalXP)
	repo.AssertExpectations(t)
}

func TestGetProgress_EmptyUserRejected(t *testing.T) {
	svc := newService(&mocks.MockProgressRepository{})

	_, err := svc.GetProgress(context.Background(), "")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestStartOrResumeSession_FreshSession(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil).Once()

	svc := newService(repo)
	state, err := svc.StartOrResumeSession(context.Background(), "u1", 1, 50)

	require.NoError(t, err)
	assert.False(t, state.IsResuming)
	assert.Zero(t, state.ResumePoint)
	assert.Len(t, state.Session.QuestionOrder, 50)
	repo.AssertExpectations(t)
}

func TestStartOrResumeSession_ResumesWithSameOrder(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	svc := newService(repo)
	first, err := svc.StartOrResumeSession(context.Background(), "u1", 1, 50)
	require.NoError(t, err)
	order := append([]int(nil), first.Session.QuestionOrder...)

	for i := 0; i < 3; i++ {
		_, err = svc.SaveAnswer(context.Background(), "u1", 1, models.Answer{QuestionID: i, IsCorrect: true})
		require.NoError(t, err)
	}

	// The reloaded session keeps the identical order and resumes at index 3.
	second, err := svc.StartOrResumeSession(context.Background(), "u1", 1, 50)
	require.NoError(t, err)
	assert.True(t, second.IsResuming)
	assert.Equal(t, 3, second.ResumePoint)
	assert.Equal(t, order, second.Session.QuestionOrder)
}

func TestStartOrResumeSession_LockedPhase(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)

	svc := newService(repo)
	_, err := svc.StartOrResumeSession(context.Background(), "u1", 3, 50)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodePhaseLocked, appErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStartOrResumeSession_InvalidPhase(t *testing.T) {
	svc := newService(&mocks.MockProgressRepository{})

	for _, phase := range []int{0, -1, 6} {
		_, err := svc.StartOrResumeSession(context.Background(), "u1", phase, 50)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr, "phase %d", phase)
		assert.Equal(t, apperrors.ErrCodeInvalidPhase, appErr.Code)
	}
}

func TestSaveAnswer_ReplacesAndRecomputes(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	svc := newService(repo)
	_, err := svc.SaveAnswer(context.Background(), "u1", 1, models.Answer{QuestionID: 7, Selected: "a", Correct: "b", IsCorrect: false})
	require.NoError(t, err)
	_, err = svc.SaveAnswer(context.Background(), "u1", 1, models.Answer{QuestionID: 7, Selected: "b", Correct: "b", IsCorrect: true})
	require.NoError(t, err)

	sess := p.Session(1)
	require.NotNil(t, sess)
	require.Len(t, sess.SessionAnswers, 1)
	assert.Equal(t, "b", sess.SessionAnswers[0].Selected)
	assert.Equal(t, 1, sess.SessionScore)
}

func TestSaveAnswer_CompletedSessionRejected(t *testing.T) {
	p := progressWith("u1")
	p.SetSession(1, &models.QuizSession{SessionCompleted: true})
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)

	svc := newService(repo)
	_, err := svc.SaveAnswer(context.Background(), "u1", 1, models.Answer{QuestionID: 0})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestCompleteQuiz_AppliesLedgerAndHistoryTogether(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	svc := newService(repo)
	result, err := svc.CompleteQuiz(context.Background(), "u1", 1, 45, 50)

	require.NoError(t, err)
	assert.Equal(t, 2, result.UnlockedNewPhase)
	assert.Equal(t, 45, result.TotalXP)
	assert.Equal(t, 0, result.PreviousBest)
	assert.False(t, result.AlreadyCompleted)
	assert.True(t, p.IsPhaseUnlocked(2))
	require.Len(t, p.QuizHistory, 1)
	assert.Equal(t, 90, p.QuizHistory[0].Percentage)
	assert.True(t, p.Session(1).SessionCompleted)
}

func TestCompleteQuiz_SecondCallIsIdempotent(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	svc := newService(repo)
	_, err := svc.CompleteQuiz(context.Background(), "u1", 1, 45, 50)
	require.NoError(t, err)

	result, err := svc.CompleteQuiz(context.Background(), "u1", 1, 45, 50)
	require.NoError(t, err)

	assert.True(t, result.AlreadyCompleted)
	assert.Equal(t, 45, p.TotalXP, "XP must not double-accrue")
	assert.Len(t, p.QuizHistory, 1, "history must not double-append")
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCompleteQuiz_LowerScoreKeepsBestButAddsXP(t *testing.T) {
	p := progressWith("u1")
	p.PhaseScores[1] = 40
	p.TotalXP = 40
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	svc := newService(repo)
	result, err := svc.CompleteQuiz(context.Background(), "u1", 1, 30, 50)

	require.NoError(t, err)
	assert.Equal(t, 40, result.PreviousBest)
	assert.Equal(t, 40, p.PhaseScores[1], "best score never regresses")
	assert.Equal(t, 70, p.TotalXP, "XP still accrues")
	assert.Zero(t, result.UnlockedNewPhase)
}

func TestCompleteQuiz_ConflictRetries(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(repository.ErrVersionConflict).Once()
	repo.On("Save", mock.Anything, p).Return(nil).Once()

	svc := newService(repo)
	_, err := svc.CompleteQuiz(context.Background(), "u1", 1, 45, 50)

	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "Save", 2)
}

func TestCompleteQuiz_ConflictExhaustionSurfaces(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(repository.ErrVersionConflict)

	svc := newService(repo)
	_, err := svc.CompleteQuiz(context.Background(), "u1", 1, 45, 50)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
}

func TestResetSession_WipesSession(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	svc := newService(repo)
	_, err := svc.StartOrResumeSession(context.Background(), "u1", 1, 50)
	require.NoError(t, err)
	_, err = svc.SaveAnswer(context.Background(), "u1", 1, models.Answer{QuestionID: 1, IsCorrect: true})
	require.NoError(t, err)

	_, err = svc.ResetSession(context.Background(), "u1", 1)
	require.NoError(t, err)

	sess := p.Session(1)
	require.NotNil(t, sess)
	assert.Empty(t, sess.QuestionOrder)
	assert.Empty(t, sess.SessionAnswers)
	assert.False(t, sess.SessionCompleted)
}

func TestResetSession_NoSessionIsNoop(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)

	svc := newService(repo)
	_, err := svc.ResetSession(context.Background(), "u1", 1)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddAchievement_DuplicateRejected(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	svc := newService(repo)
	_, err := svc.AddAchievement(context.Background(), "u1", models.Achievement{ID: "first-quiz", Name: "First Quiz"})
	require.NoError(t, err)

	_, err = svc.AddAchievement(context.Background(), "u1", models.Achievement{ID: "first-quiz", Name: "First Quiz"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeDuplicateAchievement, appErr.Code)
	assert.Len(t, p.Achievements, 1, "achievements list length unchanged")
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestAddAchievement_DefaultsApplied(t *testing.T) {
	p := progressWith("u1")
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)
	repo.On("Save", mock.Anything, p).Return(nil)

	svc := newService(repo)
	_, err := svc.AddAchievement(context.Background(), "u1", models.Achievement{ID: "a1", Name: "A"})

	require.NoError(t, err)
	require.Len(t, p.Achievements, 1)
	assert.Equal(t, "🏆", p.Achievements[0].Icon)
	assert.False(t, p.Achievements[0].DateEarned.IsZero())
}

func TestHistory_PagesNewestFirst(t *testing.T) {
	p := progressWith("u1")
	now := time.Now()
	for i := 0; i < 25; i++ {
		p.QuizHistory = append(p.QuizHistory, models.QuizAttempt{
			Phase: 1, Score: i, QuestionsTotal: 50, CompletedAt: now.Add(time.Duration(i) * time.Minute),
		})
	}
	repo := &mocks.MockProgressRepository{}
	repo.On("Get", mock.Anything, "u1").Return(p, nil)

	svc := newService(repo)
	page, err := svc.History(context.Background(), "u1", 20, 1)

	require.NoError(t, err)
	assert.Len(t, page.Items, 20)
	assert.Equal(t, 24, page.Items[0].Score)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasMore)
}

func TestLeaderboard_DelegatesWithOffset(t *testing.T) {
	lb := &mocks.MockLeaderboardRepository{}
	lb.On("Top", mock.Anything, 10, 10).Return([]models.LeaderboardEntry{{UserID: "u2", TotalXP: 50}}, nil)
	lb.On("CountUsers", mock.Anything).Return(12, nil)

	svc := services.NewProgressService(&mocks.MockProgressRepository{}, lb)
	entries, total, err := svc.Leaderboard(context.Background(), 10, 2)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 12, total)
	lb.AssertExpectations(t)
}
