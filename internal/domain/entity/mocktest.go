package entity

import (
	"time"
)

// MockTest представляет пробный экзамен (периферийная сущность,
// используется только для сводных чисел админ-дашборда)
type MockTest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Subject       string    `gorm:"size:100;not null" json:"subject"`
	DurationMin   int       `gorm:"not null;default:60" json:"duration_min"`
	QuestionCount int       `gorm:"not null;default:0" json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (MockTest) TableName() string {
	return "mock_tests"
}

// MockTestAttempt представляет прохождение пробного экзамена пользователем
type MockTestAttempt struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	MockTestID  uint       `gorm:"not null;index" json:"mock_test_id"`
	Score       float64    `gorm:"not null;default:0" json:"score"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (MockTestAttempt) TableName() string {
	return "mock_test_attempts"
}
