package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/no0bAuntor/vocab-app/internal/models"
	"github.com/no0bAuntor/vocab-app/internal/services"
)

// MockProgressService is a mock implementation of services.ProgressService
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressService) StartOrResumeSession(ctx context.Context, userID string, phase, totalQuestions int) (*services.SessionState, error) {
	args := m.Called(ctx, userID, phase, totalQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SessionState), args.Error(1)
}

func (m *MockProgressService) SaveAnswer(ctx context.Context, userID string, phase int, answer models.Answer) (*models.UserProgress, error) {
	args := m.Called(ctx, userID, phase, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressService) CompleteQuiz(ctx context.Context, userID string, phase, finalScore, questionsTotal int) (*services.CompletionResult, error) {
	args := m.Called(ctx, userID, phase, finalScore, questionsTotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CompletionResult), args.Error(1)
}

func (m *MockProgressService) ResetSession(ctx context.Context, userID string, phase int) (*models.UserProgress, error) {
	args := m.Called(ctx, userID, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressService) AddAchievement(ctx context.Context, userID string, achievement models.Achievement) (*models.UserProgress, error) {
	args := m.Called(ctx, userID, achievement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProgress), args.Error(1)
}

func (m *MockProgressService) History(ctx context.Context, userID string, pageSize, pageNumber int) (models.HistoryPage, error) {
	args := m.Called(ctx, userID, pageSize, pageNumber)
	return args.Get(0).(models.HistoryPage), args.Error(1)
}

func (m *MockProgressService) Leaderboard(ctx context.Context, limit, page int) ([]models.LeaderboardEntry, int, error) {
	args := m.Called(ctx, limit, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Int(1), args.Error(2)
}
