package service

import (
	"fmt"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// SubmitResult содержит результат проверки ответа.
// Правильный вариант не раскрывается; пояснение возвращается
// только после фиксации попытки.
type SubmitResult struct {
	AttemptID   uint   `json:"attempt_id"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// PracticeService реализует выдачу вопросов для практики и прием ответов
type PracticeService struct {
	questionRepo     repository.QuestionRepository
	attemptRepo      repository.AttemptRepository
	statsService     *StatsService
	defaultBatchSize int
	maxBatchSize     int
}

// NewPracticeService создает новый сервис практики
func NewPracticeService(
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	statsService *StatsService,
	defaultBatchSize int,
	maxBatchSize int,
) *PracticeService {
	if defaultBatchSize <= 0 {
		defaultBatchSize = 10
	}
	if maxBatchSize <= 0 {
		maxBatchSize = 50
	}
	return &PracticeService{
		questionRepo:     questionRepo,
		attemptRepo:      attemptRepo,
		statsService:     statsService,
		defaultBatchSize: defaultBatchSize,
		maxBatchSize:     maxBatchSize,
	}
}

// normalizeBatchSize приводит запрошенный размер пачки к допустимому
func (s *PracticeService) normalizeBatchSize(batchSize int) int {
	if batchSize <= 0 {
		return s.defaultBatchSize
	}
	if batchSize > s.maxBatchSize {
		return s.maxBatchSize
	}
	return batchSize
}

// SelectNextUnattempted возвращает очередные не отвеченные пользователем
// вопросы, старые первыми. Если все подходящие вопросы уже отвечены,
// выдача продолжается по полному множеству. Пустое множество — пустой
// срез без ошибки.
func (s *PracticeService) SelectNextUnattempted(
	userID uint,
	filter repository.PracticeFilter,
	batchSize int,
) ([]entity.Question, error) {
	limit := s.normalizeBatchSize(batchSize)

	questions, err := s.questionRepo.GetUnattempted(userID, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select unattempted questions: %w", err)
	}
	if len(questions) > 0 {
		return questions, nil
	}

	// Все подходящие вопросы отвечены — повторяем по полному множеству
	questions, err = s.questionRepo.GetMatching(filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select fallback questions: %w", err)
	}
	if questions == nil {
		questions = []entity.Question{}
	}
	return questions, nil
}

// SelectRandom возвращает случайные не отвеченные пользователем вопросы
// без повторов внутри пачки, с тем же fallback-поведением
func (s *PracticeService) SelectRandom(
	userID uint,
	filter repository.PracticeFilter,
	batchSize int,
) ([]entity.Question, error) {
	limit := s.normalizeBatchSize(batchSize)

	questions, err := s.questionRepo.GetRandomUnattempted(userID, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select random questions: %w", err)
	}
	if len(questions) > 0 {
		return questions, nil
	}

	questions, err = s.questionRepo.GetRandomMatching(filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select fallback questions: %w", err)
	}
	if questions == nil {
		questions = []entity.Question{}
	}
	return questions, nil
}

// SubmitAnswer проверяет ответ пользователя и добавляет запись в журнал
// попыток. Журнал append-only: повторная отправка создает новую попытку.
func (s *PracticeService) SubmitAnswer(userID, questionID uint, answer string) (*SubmitResult, error) {
	if !entity.IsValidOption(answer) {
		return nil, fmt.Errorf("%w: ответ должен быть одним из вариантов A-D", apperrors.ErrValidation)
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}

	attempt := &entity.QuestionAttempt{
		UserID:     userID,
		QuestionID: questionID,
		Answer:     answer,
		IsCorrect:  question.IsCorrect(answer),
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	// Новая попытка меняет attempted/accuracy глобальной статистики,
	// закешированные агрегаты перестают отражать журнал
	s.statsService.InvalidateGlobalCache()

	return &SubmitResult{
		AttemptID:   attempt.ID,
		IsCorrect:   attempt.IsCorrect,
		Explanation: question.Explanation,
	}, nil
}

// GetUserAttempts возвращает страницу истории попыток пользователя,
// новые первыми
func (s *PracticeService) GetUserAttempts(userID uint, limit, offset int) ([]entity.QuestionAttempt, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	attempts, err := s.attemptRepo.GetUserAttempts(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user attempts: %w", err)
	}
	if attempts == nil {
		attempts = []entity.QuestionAttempt{}
	}
	return attempts, nil
}
