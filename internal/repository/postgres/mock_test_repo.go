package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// MockTestRepo реализует repository.MockTestRepository
type MockTestRepo struct {
	db *gorm.DB
}

// NewMockTestRepo создает новый репозиторий пробных экзаменов
func NewMockTestRepo(db *gorm.DB) *MockTestRepo {
	return &MockTestRepo{db: db}
}

// Count возвращает общее количество пробных экзаменов
func (r *MockTestRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.MockTest{}).Count(&count).Error
	return count, err
}

// GetUserAttempts возвращает прохождения пробных экзаменов пользователя, новые первыми
func (r *MockTestRepo) GetUserAttempts(userID uint) ([]entity.MockTestAttempt, error) {
	var attempts []entity.MockTestAttempt
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}
