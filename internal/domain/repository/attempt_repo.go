package repository

import (
	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// AttemptRepository определяет методы для журнала попыток.
// Журнал append-only: попытки никогда не обновляются и не удаляются.
type AttemptRepository interface {
	Create(attempt *entity.QuestionAttempt) error
	GetUserAttempts(userID uint, limit, offset int) ([]entity.QuestionAttempt, error)

	// CountDistinctQuestions возвращает число различных вопросов,
	// на которые пользователь сделал хотя бы одну попытку
	CountDistinctQuestions(userID uint) (int64, error)
}
