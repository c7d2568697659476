package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// StatsRepo реализует repository.StatsRepository
type StatsRepo struct {
	db *gorm.DB
}

// NewStatsRepo создает новый репозиторий статистики
func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// dimensionColumn возвращает имя колонки для измерения.
// Имя подставляется в текст запроса, поэтому допускаются только
// значения из белого списка Dimension.
func dimensionColumn(dimension repository.Dimension) (string, error) {
	switch dimension {
	case repository.DimensionSubject:
		return "subject", nil
	case repository.DimensionTopic:
		return "topic", nil
	case repository.DimensionYear:
		return "year", nil
	case repository.DimensionDifficulty:
		return "difficulty", nil
	}
	return "", fmt.Errorf("%w: unknown dimension %q", apperrors.ErrValidation, dimension)
}

// dimensionOrderClause возвращает ORDER BY для измерения.
// difficulty — фиксированный ранг Easy < Medium < Hard < прочее;
// year — по явному параметру order (по умолчанию новые первыми);
// subject/topic — по алфавиту.
func dimensionOrderClause(dimension repository.Dimension, order repository.SortOrder) string {
	switch dimension {
	case repository.DimensionDifficulty:
		return `CASE dc.raw_value
			WHEN 'Easy' THEN 1
			WHEN 'Medium' THEN 2
			WHEN 'Hard' THEN 3
			ELSE 4
		END`
	case repository.DimensionYear:
		if order == repository.OrderAsc {
			return "dc.raw_value ASC"
		}
		return "dc.raw_value DESC"
	}
	return "dc.raw_value ASC"
}

// GetDimensionStats выполняет единый агрегирующий запрос:
// всего вопросов на группу, различных отвеченных и точность.
// Точность = доля различных отвеченных вопросов группы с хотя бы одной
// правильной попыткой; NULLIF защищает от деления на ноль, COALESCE
// приводит отсутствие попыток к нулю (не NULL и не ошибка).
func (r *StatsRepo) GetDimensionStats(dimension repository.Dimension, scopeUserID *uint, order repository.SortOrder) ([]repository.DimensionStat, error) {
	column, err := dimensionColumn(dimension)
	if err != nil {
		return nil, err
	}

	scopeClause := ""
	args := make([]interface{}, 0, 1)
	if scopeUserID != nil {
		scopeClause = "WHERE qa.user_id = ?"
		args = append(args, *scopeUserID)
	}

	sql := fmt.Sprintf(`
		WITH dimension_counts AS (
			SELECT %[1]s AS raw_value, COUNT(*) AS total_questions
			FROM questions
			GROUP BY %[1]s
		), attempt_counts AS (
			SELECT q.%[1]s AS raw_value,
			       COUNT(DISTINCT qa.question_id) AS attempted_questions,
			       COUNT(DISTINCT qa.question_id) FILTER (WHERE qa.is_correct) AS correct_questions
			FROM question_attempts qa
			JOIN questions q ON q.id = qa.question_id
			%[2]s
			GROUP BY q.%[1]s
		)
		SELECT CAST(dc.raw_value AS TEXT) AS value,
		       dc.total_questions,
		       COALESCE(ac.attempted_questions, 0) AS attempted_questions,
		       COALESCE(ROUND(ac.correct_questions * 100.0 / NULLIF(ac.attempted_questions, 0), 2), 0) AS accuracy
		FROM dimension_counts dc
		LEFT JOIN attempt_counts ac ON ac.raw_value = dc.raw_value
		ORDER BY %[3]s
	`, column, scopeClause, dimensionOrderClause(dimension, order))

	var stats []repository.DimensionStat
	if err := r.db.Raw(sql, args...).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// GetUserStatistics возвращает сводку по каждому обычному пользователю.
// Точность считается по каноническому определению (различные отвеченные
// вопросы с хотя бы одной правильной попыткой), а не как среднее по
// всем попыткам.
func (r *StatsRepo) GetUserStatistics() ([]repository.UserStatistics, error) {
	sql := `
		SELECT u.id AS user_id,
		       u.username,
		       u.email,
		       u.created_at AS joined_at,
		       COALESCE(a.attempted_questions, 0) AS attempted_questions,
		       COALESCE(ROUND(a.correct_questions * 100.0 / NULLIF(a.attempted_questions, 0), 2), 0) AS accuracy,
		       COALESCE(m.tests_taken, 0) AS mock_tests_taken,
		       COALESCE(ROUND(CAST(m.average_score AS numeric), 2), 0) AS average_score
		FROM users u
		LEFT JOIN (
			SELECT user_id,
			       COUNT(DISTINCT question_id) AS attempted_questions,
			       COUNT(DISTINCT question_id) FILTER (WHERE is_correct) AS correct_questions
			FROM question_attempts
			GROUP BY user_id
		) a ON a.user_id = u.id
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS tests_taken, AVG(score) AS average_score
			FROM mock_test_attempts
			GROUP BY user_id
		) m ON m.user_id = u.id
		WHERE u.role = 'user'
		ORDER BY u.created_at ASC, u.id ASC
	`

	var stats []repository.UserStatistics
	if err := r.db.Raw(sql).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
