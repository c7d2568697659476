package entity

import (
	"time"
)

// QuestionAttempt представляет попытку ответа пользователя на вопрос.
// Записи только добавляются и никогда не изменяются: повторные попытки
// по той же паре (user, question) допустимы, дедупликация выполняется
// на чтении (DISTINCT в статистических запросах).
type QuestionAttempt struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Answer     string    `gorm:"size:1;not null" json:"answer"`
	IsCorrect  bool      `gorm:"not null" json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuestionAttempt) TableName() string {
	return "question_attempts"
}
