package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

func TestStatsService_ComputeDimensionStats_InvalidDimension(t *testing.T) {
	// Arrange
	statsRepo := new(MockStatsRepository)
	svc := NewStatsService(statsRepo, nil, 0)

	// Act
	_, err := svc.ComputeDimensionStats("color", nil, repository.OrderDefault)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "неизвестное измерение должно отклоняться")
	statsRepo.AssertNotCalled(t, "GetDimensionStats")
}

func TestStatsService_ComputeDimensionStats_InvalidOrder(t *testing.T) {
	// Arrange
	statsRepo := new(MockStatsRepository)
	svc := NewStatsService(statsRepo, nil, 0)

	// Act
	_, err := svc.ComputeDimensionStats(repository.DimensionYear, nil, "sideways")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation, "недопустимое направление сортировки должно отклоняться")
}

func TestStatsService_ComputeDimensionStats_ZeroAttempted(t *testing.T) {
	// Arrange: группа без попыток должна иметь accuracy ровно 0
	statsRepo := new(MockStatsRepository)
	statsRepo.On("GetDimensionStats", repository.DimensionSubject, (*uint)(nil), repository.OrderDefault).
		Return([]repository.DimensionStat{
			{Value: "Algebra", TotalQuestions: 12, AttemptedQuestions: 0, Accuracy: 0},
		}, nil)
	svc := NewStatsService(statsRepo, nil, 0)

	// Act
	stats, err := svc.ComputeDimensionStats(repository.DimensionSubject, nil, repository.OrderDefault)

	// Assert
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 0.0, stats[0].Accuracy, "accuracy без попыток должна быть ровно 0")
	assert.Equal(t, 12, stats[0].TotalQuestions)
}

func TestStatsService_ComputeDimensionStats_DifficultyOrder(t *testing.T) {
	// Arrange: репозиторий вернул группы в произвольном порядке
	statsRepo := new(MockStatsRepository)
	statsRepo.On("GetDimensionStats", repository.DimensionDifficulty, (*uint)(nil), repository.OrderDefault).
		Return([]repository.DimensionStat{
			{Value: "Hard", TotalQuestions: 3},
			{Value: "Unrated", TotalQuestions: 1},
			{Value: "Easy", TotalQuestions: 5},
			{Value: "Medium", TotalQuestions: 4},
		}, nil)
	svc := NewStatsService(statsRepo, nil, 0)

	// Act
	stats, err := svc.ComputeDimensionStats(repository.DimensionDifficulty, nil, repository.OrderDefault)

	// Assert
	require.NoError(t, err)
	require.Len(t, stats, 4)
	values := []string{stats[0].Value, stats[1].Value, stats[2].Value, stats[3].Value}
	assert.Equal(t, []string{"Easy", "Medium", "Hard", "Unrated"}, values,
		"группы сложности должны идти в порядке Easy, Medium, Hard, прочее")
}

func TestStatsService_ComputeDimensionStats_ScopedSkipsCache(t *testing.T) {
	// Arrange: пользовательская область не должна трогать кеш
	statsRepo := new(MockStatsRepository)
	cacheRepo := new(MockCacheRepository)
	userID := uintPtr(7)
	statsRepo.On("GetDimensionStats", repository.DimensionSubject, userID, repository.OrderDefault).
		Return([]repository.DimensionStat{{Value: "Algebra", TotalQuestions: 10, AttemptedQuestions: 4, Accuracy: 75.0}}, nil)
	svc := NewStatsService(statsRepo, cacheRepo, time.Minute)

	// Act
	stats, err := svc.ComputeDimensionStats(repository.DimensionSubject, userID, repository.OrderDefault)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, stats[0].AttemptedQuestions)
	cacheRepo.AssertNotCalled(t, "GetJSON")
	cacheRepo.AssertNotCalled(t, "SetJSON")
}

func TestStatsService_ComputeDimensionStats_CacheFailureFallsThrough(t *testing.T) {
	// Arrange: ошибки кеша не должны прерывать запрос
	statsRepo := new(MockStatsRepository)
	cacheRepo := new(MockCacheRepository)
	cacheRepo.On("GetJSON", "stats:global:subject:", mock.Anything).Return(errors.New("redis down"))
	cacheRepo.On("SetJSON", "stats:global:subject:", mock.Anything, time.Minute).Return(errors.New("redis down"))
	statsRepo.On("GetDimensionStats", repository.DimensionSubject, (*uint)(nil), repository.OrderDefault).
		Return([]repository.DimensionStat{{Value: "Algebra", TotalQuestions: 10}}, nil)
	svc := NewStatsService(statsRepo, cacheRepo, time.Minute)

	// Act
	stats, err := svc.ComputeDimensionStats(repository.DimensionSubject, nil, repository.OrderDefault)

	// Assert
	require.NoError(t, err, "отказ Redis не должен ломать чтение статистики")
	assert.Len(t, stats, 1)
	statsRepo.AssertExpectations(t)
}

func TestStatsService_ComputeDimensionStats_DBErrorPropagates(t *testing.T) {
	// Arrange
	statsRepo := new(MockStatsRepository)
	statsRepo.On("GetDimensionStats", repository.DimensionTopic, (*uint)(nil), repository.OrderDefault).
		Return(nil, errors.New("db down"))
	svc := NewStatsService(statsRepo, nil, 0)

	// Act
	_, err := svc.ComputeDimensionStats(repository.DimensionTopic, nil, repository.OrderDefault)

	// Assert
	assert.Error(t, err, "ошибка БД должна доходить до вызывающего")
}

func TestStatsService_GetUserSubjectProgress(t *testing.T) {
	// Arrange
	statsRepo := new(MockStatsRepository)
	statsRepo.On("GetDimensionStats", repository.DimensionSubject, mock.MatchedBy(func(p *uint) bool {
		return p != nil && *p == 7
	}), repository.OrderDefault).
		Return([]repository.DimensionStat{{Value: "Algebra", TotalQuestions: 10, AttemptedQuestions: 3, Accuracy: 66.67}}, nil)
	svc := NewStatsService(statsRepo, nil, 0)

	// Act
	stats, err := svc.GetUserSubjectProgress(7)

	// Assert
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Algebra", stats[0].Value)
	assert.Equal(t, 66.67, stats[0].Accuracy)
}

func TestStatsService_ComputeDimensionStats_EmptyCatalog(t *testing.T) {
	// Arrange: пустой каталог — пустой срез, не ошибка
	statsRepo := new(MockStatsRepository)
	statsRepo.On("GetDimensionStats", repository.DimensionYear, (*uint)(nil), repository.OrderDesc).
		Return([]repository.DimensionStat{}, nil)
	svc := NewStatsService(statsRepo, nil, 0)

	// Act
	stats, err := svc.ComputeDimensionStats(repository.DimensionYear, nil, repository.OrderDesc)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}
