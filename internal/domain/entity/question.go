package entity

import (
	"time"
)

// Уровни сложности вопроса
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Варианты ответа
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// Question представляет экзаменационный вопрос с четырьмя вариантами ответа
type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Text          string    `gorm:"size:2000;not null" json:"text"`
	OptionA       string    `gorm:"size:500;not null" json:"option_a"`
	OptionB       string    `gorm:"size:500;not null" json:"option_b"`
	OptionC       string    `gorm:"size:500;not null" json:"option_c"`
	OptionD       string    `gorm:"size:500;not null" json:"option_d"`
	CorrectOption string    `gorm:"size:1;not null" json:"-"` // Скрыто от клиента
	Explanation   string    `gorm:"size:2000;not null" json:"-"` // Раскрывается только после ответа
	Subject       string    `gorm:"size:100;not null;index" json:"subject"`
	Topic         string    `gorm:"size:100;not null;index" json:"topic"`
	Year          int       `gorm:"not null;index" json:"year"`
	Difficulty    string    `gorm:"size:10;not null;index" json:"difficulty"`
	IsFree        bool      `gorm:"not null;default:false" json:"is_free"`
	CreatedBy     string    `gorm:"size:100;not null;default:''" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, совпадает ли выбранный вариант с правильным
func (q *Question) IsCorrect(selectedOption string) bool {
	return selectedOption == q.CorrectOption
}

// IsValidOption проверяет, что вариант принадлежит множеству A-D
func IsValidOption(option string) bool {
	switch option {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// IsValidDifficulty проверяет, что сложность принадлежит множеству Easy/Medium/Hard
func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DifficultyRank возвращает порядковый ранг сложности: Easy < Medium < Hard < прочее.
// Используется для сортировки статистики по сложности.
func DifficultyRank(difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 4
}
