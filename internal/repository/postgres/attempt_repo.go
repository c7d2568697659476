package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create добавляет запись о попытке. Журнал append-only.
func (r *AttemptRepo) Create(attempt *entity.QuestionAttempt) error {
	return r.db.Create(attempt).Error
}

// GetUserAttempts возвращает попытки пользователя, новые первыми
func (r *AttemptRepo) GetUserAttempts(userID uint, limit, offset int) ([]entity.QuestionAttempt, error) {
	var attempts []entity.QuestionAttempt
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&attempts).Error
	return attempts, err
}

// CountDistinctQuestions возвращает число различных вопросов с хотя бы
// одной попыткой пользователя
func (r *AttemptRepo) CountDistinctQuestions(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuestionAttempt{}).
		Where("user_id = ?", userID).
		Distinct("question_id").
		Count(&count).Error
	return count, err
}
