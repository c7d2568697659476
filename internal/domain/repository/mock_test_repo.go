package repository

import (
	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// MockTestRepository определяет методы для пробных экзаменов.
// Сущность периферийная: используется дашбордом и историей пользователя.
type MockTestRepository interface {
	Count() (int64, error)
	GetUserAttempts(userID uint) ([]entity.MockTestAttempt, error)
}
