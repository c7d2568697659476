package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
)

func TestUserService_GetDashboard(t *testing.T) {
	// Arrange
	attemptRepo := new(MockAttemptRepository)
	mockTestRepo := new(MockMockTestRepository)
	statsRepo := new(MockStatsRepository)

	attemptRepo.On("CountDistinctQuestions", uint(7)).Return(int64(12), nil)
	statsRepo.On("GetDimensionStats", repository.DimensionSubject, mock.MatchedBy(func(p *uint) bool {
		return p != nil && *p == 7
	}), repository.OrderDefault).
		Return([]repository.DimensionStat{{Value: "Math", TotalQuestions: 40, AttemptedQuestions: 12, Accuracy: 75.0}}, nil)
	mockTestRepo.On("GetUserAttempts", uint(7)).
		Return([]entity.MockTestAttempt{{ID: 3, UserID: 7, MockTestID: 1, Score: 82.5}}, nil)

	svc := NewUserService(attemptRepo, mockTestRepo, NewStatsService(statsRepo, nil, 0))

	// Act
	dashboard, err := svc.GetDashboard(7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(12), dashboard.AttemptedQuestions, "считаются различные вопросы, не попытки")
	require.Len(t, dashboard.SubjectProgress, 1)
	assert.Equal(t, "Math", dashboard.SubjectProgress[0].Value)
	require.Len(t, dashboard.MockTestAttempts, 1)
	assert.Equal(t, 82.5, dashboard.MockTestAttempts[0].Score)
}

func TestUserService_GetDashboard_NoActivity(t *testing.T) {
	// Arrange: новый пользователь — нули и пустые срезы, не ошибка
	attemptRepo := new(MockAttemptRepository)
	mockTestRepo := new(MockMockTestRepository)
	statsRepo := new(MockStatsRepository)

	attemptRepo.On("CountDistinctQuestions", uint(9)).Return(int64(0), nil)
	statsRepo.On("GetDimensionStats", repository.DimensionSubject, mock.Anything, repository.OrderDefault).
		Return([]repository.DimensionStat{}, nil)
	mockTestRepo.On("GetUserAttempts", uint(9)).Return([]entity.MockTestAttempt{}, nil)

	svc := NewUserService(attemptRepo, mockTestRepo, NewStatsService(statsRepo, nil, 0))

	// Act
	dashboard, err := svc.GetDashboard(9)

	// Assert
	require.NoError(t, err)
	assert.Zero(t, dashboard.AttemptedQuestions)
	assert.NotNil(t, dashboard.MockTestAttempts)
	assert.Empty(t, dashboard.MockTestAttempts)
}

func TestUserService_GetDashboard_RepoError(t *testing.T) {
	// Arrange
	attemptRepo := new(MockAttemptRepository)
	mockTestRepo := new(MockMockTestRepository)
	statsRepo := new(MockStatsRepository)
	attemptRepo.On("CountDistinctQuestions", uint(7)).Return(int64(0), errors.New("db down"))

	svc := NewUserService(attemptRepo, mockTestRepo, NewStatsService(statsRepo, nil, 0))

	// Act
	_, err := svc.GetDashboard(7)

	// Assert
	assert.Error(t, err)
}
