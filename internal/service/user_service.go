package service

import (
	"fmt"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
)

// UserDashboard содержит сводку личного кабинета: сколько различных
// вопросов пользователь прошел, прогресс по предметам и история
// пробных экзаменов
type UserDashboard struct {
	AttemptedQuestions int64                      `json:"attempted_questions"`
	SubjectProgress    []repository.DimensionStat `json:"subject_progress"`
	MockTestAttempts   []entity.MockTestAttempt   `json:"mock_test_attempts"`
}

// UserService собирает данные личного кабинета пользователя
type UserService struct {
	attemptRepo  repository.AttemptRepository
	mockTestRepo repository.MockTestRepository
	statsService *StatsService
}

// NewUserService создает новый сервис личного кабинета
func NewUserService(
	attemptRepo repository.AttemptRepository,
	mockTestRepo repository.MockTestRepository,
	statsService *StatsService,
) *UserService {
	return &UserService{
		attemptRepo:  attemptRepo,
		mockTestRepo: mockTestRepo,
		statsService: statsService,
	}
}

// GetDashboard возвращает сводку личного кабинета.
// Счетчик пройденного считает различные вопросы: повторные попытки
// по одному вопросу не увеличивают его.
func (s *UserService) GetDashboard(userID uint) (*UserDashboard, error) {
	attempted, err := s.attemptRepo.CountDistinctQuestions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attempted questions: %w", err)
	}

	progress, err := s.statsService.GetUserSubjectProgress(userID)
	if err != nil {
		return nil, err
	}

	mockAttempts, err := s.mockTestRepo.GetUserAttempts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mock test attempts: %w", err)
	}
	if mockAttempts == nil {
		mockAttempts = []entity.MockTestAttempt{}
	}

	return &UserDashboard{
		AttemptedQuestions: attempted,
		SubjectProgress:    progress,
		MockTestAttempts:   mockAttempts,
	}, nil
}
