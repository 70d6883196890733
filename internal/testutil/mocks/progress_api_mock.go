package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/no0bAuntor/vocab-app/internal/client"
	"github.com/no0bAuntor/vocab-app/internal/models"
)

// MockProgressAPI is a mock implementation of client.ProgressAPI
type MockProgressAPI struct {
	mock.Mock
}

func (m *MockProgressAPI) StartOrResumeSession(ctx context.Context, phase int) (*client.SessionState, error) {
	args := m.Called(ctx, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.SessionState), args.Error(1)
}

func (m *MockProgressAPI) SaveAnswer(ctx context.Context, phase int, answer models.Answer) (*models.QuizSession, error) {
	args := m.Called(ctx, phase, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizSession), args.Error(1)
}

func (m *MockProgressAPI) CompleteQuiz(ctx context.Context, phase, finalScore, questionsTotal int) (*client.CompletionResult, error) {
	args := m.Called(ctx, phase, finalScore, questionsTotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.CompletionResult), args.Error(1)
}

func (m *MockProgressAPI) ResetSession(ctx context.Context, phase int) error {
	args := m.Called(ctx, phase)
	return args.Error(0)
}

func (m *MockProgressAPI) Questions(ctx context.Context, phase int) ([]models.Question, error) {
	args := m.Called(ctx, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}
