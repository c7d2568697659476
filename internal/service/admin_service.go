package service

import (
	"fmt"

	"github.com/yourusername/examprep-api/internal/domain/repository"
)

// DashboardSummary содержит сводные показатели для админ-дашборда
type DashboardSummary struct {
	TotalUsers         int64                      `json:"total_users"`
	TotalQuestions     int64                      `json:"total_questions"`
	TotalMockTests     int64                      `json:"total_mock_tests"`
	QuestionsBySubject []repository.DimensionStat `json:"questions_by_subject"`
	QuestionsByYear    []repository.DimensionStat `json:"questions_by_year"`
}

// AdminService собирает данные для административной консоли
type AdminService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	mockTestRepo repository.MockTestRepository
	statsService *StatsService
}

// NewAdminService создает новый сервис администрирования
func NewAdminService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	mockTestRepo repository.MockTestRepository,
	statsService *StatsService,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		mockTestRepo: mockTestRepo,
		statsService: statsService,
	}
}

// GetDashboard возвращает сводку для главной страницы админки
func (s *AdminService) GetDashboard() (*DashboardSummary, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	totalQuestions, err := s.questionRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	totalMockTests, err := s.mockTestRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count mock tests: %w", err)
	}

	bySubject, err := s.statsService.ComputeDimensionStats(repository.DimensionSubject, nil, repository.OrderDefault)
	if err != nil {
		return nil, err
	}
	byYear, err := s.statsService.ComputeDimensionStats(repository.DimensionYear, nil, repository.OrderDesc)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalUsers:         totalUsers,
		TotalQuestions:     totalQuestions,
		TotalMockTests:     totalMockTests,
		QuestionsBySubject: bySubject,
		QuestionsByYear:    byYear,
	}, nil
}

// GetUserStatistics возвращает сводку по каждому обычному пользователю
func (s *AdminService) GetUserStatistics() ([]repository.UserStatistics, error) {
	return s.statsService.GetUserStatistics()
}
