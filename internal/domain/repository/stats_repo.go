package repository

import "time"

// Dimension задает атрибут вопроса, по которому группируется статистика
type Dimension string

const (
	DimensionSubject    Dimension = "subject"
	DimensionTopic      Dimension = "topic"
	DimensionYear       Dimension = "year"
	DimensionDifficulty Dimension = "difficulty"
)

// IsValid проверяет, что измерение принадлежит допустимому множеству
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionSubject, DimensionTopic, DimensionYear, DimensionDifficulty:
		return true
	}
	return false
}

// SortOrder задает явное направление сортировки групп.
// Применяется к измерению year; subject/topic всегда по алфавиту,
// difficulty всегда по фиксированному рангу Easy < Medium < Hard < прочее.
type SortOrder string

const (
	OrderDefault SortOrder = ""
	OrderAsc     SortOrder = "asc"
	OrderDesc    SortOrder = "desc"
)

// DimensionStat содержит агрегаты по одному значению измерения.
// Accuracy — процент различных отвеченных вопросов группы, на которые
// есть хотя бы одна правильная попытка; ровно 0 при attempted = 0.
type DimensionStat struct {
	Value              string  `json:"value"`
	TotalQuestions     int     `json:"total_questions"`
	AttemptedQuestions int     `json:"attempted_questions"`
	Accuracy           float64 `json:"accuracy"`
}

// UserStatistics содержит сводку по одному пользователю для админ-дашборда
type UserStatistics struct {
	UserID             uint      `json:"user_id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	JoinedAt           time.Time `json:"joined_at"`
	AttemptedQuestions int       `json:"attempted_questions"`
	Accuracy           float64   `json:"accuracy"`
	MockTestsTaken     int       `json:"mock_tests_taken"`
	AverageScore       float64   `json:"average_score"`
}

// StatsRepository определяет статистические запросы над каталогом
// вопросов и журналом попыток
type StatsRepository interface {
	// GetDimensionStats возвращает агрегаты по каждому значению измерения.
	// scopeUserID ограничивает attempted/accuracy попытками одного
	// пользователя; nil означает глобальную область (все пользователи).
	GetDimensionStats(dimension Dimension, scopeUserID *uint, order SortOrder) ([]DimensionStat, error)

	// GetUserStatistics возвращает сводку по каждому обычному пользователю
	GetUserStatistics() ([]UserStatistics, error)
}
