package repository

import (
	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// QuestionFilters содержит фильтры для админского списка вопросов.
// Нулевые значения означают отсутствие фильтра.
type QuestionFilters struct {
	Subject    string
	Topic      string
	Difficulty string
	Year       int
}

// PracticeFilter ограничивает выборку вопросов для практики.
// Пустые значения означают "все вопросы".
type PracticeFilter struct {
	Subject string
	Topic   string
}

// SubjectSummary содержит предмет и количество вопросов по нему
type SubjectSummary struct {
	Subject        string `json:"subject"`
	TotalQuestions int    `json:"total_questions"`
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	Update(question *entity.Question) error
	Delete(id uint) error
	Count() (int64, error)

	// ListWithFilters возвращает полные вопросы для админки, новые первыми
	ListWithFilters(filters QuestionFilters) ([]entity.Question, error)

	// ListSubjects возвращает предметы с количеством вопросов, по алфавиту
	ListSubjects() ([]SubjectSummary, error)

	// Выборка для практики. Оба метода возвращают вопросы с безопасной
	// проекцией полей: correct_option и explanation не выбираются.
	// GetUnattempted — не отвеченные пользователем, старые первыми.
	// GetRandomUnattempted — равномерно случайные без повторов.
	GetUnattempted(userID uint, filter PracticeFilter, limit int) ([]entity.Question, error)
	GetRandomUnattempted(userID uint, filter PracticeFilter, limit int) ([]entity.Question, error)

	// Fallback-выборка без исключения отвеченных (пользователь прошел всё)
	GetMatching(filter PracticeFilter, limit int) ([]entity.Question, error)
	GetRandomMatching(filter PracticeFilter, limit int) ([]entity.Question, error)
}
