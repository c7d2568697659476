package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// QuestionInput содержит поля для создания или обновления вопроса
type QuestionInput struct {
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
	Explanation   string
	Subject       string
	Topic         string
	Year          int
	Difficulty    string
	IsFree        bool
}

// QuestionService реализует административные операции над каталогом вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	statsService *StatsService
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, statsService *StatsService) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		statsService: statsService,
	}
}

// validateInput проверяет обязательные поля и допустимые значения
func validateInput(input *QuestionInput) error {
	required := map[string]string{
		"text":           input.Text,
		"option_a":       input.OptionA,
		"option_b":       input.OptionB,
		"option_c":       input.OptionC,
		"option_d":       input.OptionD,
		"correct_option": input.CorrectOption,
		"explanation":    input.Explanation,
		"subject":        input.Subject,
		"topic":          input.Topic,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: поле '%s' обязательно", apperrors.ErrValidation, field)
		}
	}
	if !entity.IsValidOption(input.CorrectOption) {
		return fmt.Errorf("%w: correct_option должен быть одним из A-D", apperrors.ErrValidation)
	}
	if !entity.IsValidDifficulty(input.Difficulty) {
		return fmt.Errorf("%w: difficulty должна быть Easy, Medium или Hard", apperrors.ErrValidation)
	}
	if input.Year < 2000 {
		return fmt.Errorf("%w: year должен быть не меньше 2000", apperrors.ErrValidation)
	}
	return nil
}

// CreateQuestion добавляет вопрос в каталог. createdBy — email
// администратора из сессии.
func (s *QuestionService) CreateQuestion(input *QuestionInput, createdBy string) (*entity.Question, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	question := &entity.Question{
		Text:          strings.TrimSpace(input.Text),
		OptionA:       input.OptionA,
		OptionB:       input.OptionB,
		OptionC:       input.OptionC,
		OptionD:       input.OptionD,
		CorrectOption: input.CorrectOption,
		Explanation:   input.Explanation,
		Subject:       strings.TrimSpace(input.Subject),
		Topic:         strings.TrimSpace(input.Topic),
		Year:          input.Year,
		Difficulty:    input.Difficulty,
		IsFree:        input.IsFree,
		CreatedBy:     createdBy,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.statsService.InvalidateGlobalCache()
	return question, nil
}

// UpdateQuestion обновляет существующий вопрос целиком
func (s *QuestionService) UpdateQuestion(id uint, input *QuestionInput) (*entity.Question, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	question.Text = strings.TrimSpace(input.Text)
	question.OptionA = input.OptionA
	question.OptionB = input.OptionB
	question.OptionC = input.OptionC
	question.OptionD = input.OptionD
	question.CorrectOption = input.CorrectOption
	question.Explanation = input.Explanation
	question.Subject = strings.TrimSpace(input.Subject)
	question.Topic = strings.TrimSpace(input.Topic)
	question.Year = input.Year
	question.Difficulty = input.Difficulty
	question.IsFree = input.IsFree

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	s.statsService.InvalidateGlobalCache()
	return question, nil
}

// DeleteQuestion удаляет вопрос из каталога
func (s *QuestionService) DeleteQuestion(id uint) error {
	if err := s.questionRepo.Delete(id); err != nil {
		return err
	}
	s.statsService.InvalidateGlobalCache()
	return nil
}

// GetQuestion возвращает вопрос со всеми полями для админки
func (s *QuestionService) GetQuestion(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// ListQuestions возвращает вопросы для админки с фильтрами, новые первыми
func (s *QuestionService) ListQuestions(filters repository.QuestionFilters) ([]entity.Question, error) {
	questions, err := s.questionRepo.ListWithFilters(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if questions == nil {
		questions = []entity.Question{}
	}
	return questions, nil
}

// ListSubjects возвращает предметы с количеством вопросов, по алфавиту
func (s *QuestionService) ListSubjects() ([]repository.SubjectSummary, error) {
	subjects, err := s.questionRepo.ListSubjects()
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	if subjects == nil {
		subjects = []repository.SubjectSummary{}
	}
	return subjects, nil
}
