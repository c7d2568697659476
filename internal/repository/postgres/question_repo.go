package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// practiceColumns — безопасная проекция для выдачи вопросов в практику:
// correct_option и explanation не выбираются и остаются нулевыми.
const practiceColumns = "id, text, option_a, option_b, option_c, option_d, subject, topic, year, difficulty, is_free, created_at"

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос по ID со всеми полями
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// Update обновляет информацию о вопросе
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Save(question).Error
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count возвращает общее количество вопросов в каталоге
func (r *QuestionRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).Count(&count).Error
	return count, err
}

// ListWithFilters возвращает полные вопросы для админки, новые первыми
func (r *QuestionRepo) ListWithFilters(filters repository.QuestionFilters) ([]entity.Question, error) {
	query := r.db.Model(&entity.Question{})

	if filters.Subject != "" {
		query = query.Where("subject = ?", filters.Subject)
	}
	if filters.Topic != "" {
		query = query.Where("topic = ?", filters.Topic)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.Year != 0 {
		query = query.Where("year = ?", filters.Year)
	}

	var questions []entity.Question
	err := query.Order("created_at DESC, id DESC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ListSubjects возвращает предметы с количеством вопросов, по алфавиту
func (r *QuestionRepo) ListSubjects() ([]repository.SubjectSummary, error) {
	var subjects []repository.SubjectSummary
	err := r.db.Model(&entity.Question{}).
		Select("subject, COUNT(*) AS total_questions").
		Group("subject").
		Order("subject ASC").
		Scan(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

// applyPracticeFilter добавляет условия subject/topic к запросу
func applyPracticeFilter(query *gorm.DB, filter repository.PracticeFilter) *gorm.DB {
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Topic != "" {
		query = query.Where("topic = ?", filter.Topic)
	}
	return query
}

// GetUnattempted возвращает вопросы без попыток данного пользователя,
// старые первыми. Исключение отвеченных выполняется в том же запросе,
// поэтому выборка согласована в пределах одного оператора.
func (r *QuestionRepo) GetUnattempted(userID uint, filter repository.PracticeFilter, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	query := r.db.Model(&entity.Question{}).
		Select(practiceColumns).
		Where("NOT EXISTS (SELECT 1 FROM question_attempts qa WHERE qa.question_id = questions.id AND qa.user_id = ?)", userID)
	query = applyPracticeFilter(query, filter)

	err := query.Order("created_at ASC, id ASC").Limit(limit).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetRandomUnattempted возвращает случайные вопросы без попыток данного
// пользователя. ORDER BY RANDOM() LIMIT n дает равномерную выборку без
// повторов в одном запросе.
func (r *QuestionRepo) GetRandomUnattempted(userID uint, filter repository.PracticeFilter, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	query := r.db.Model(&entity.Question{}).
		Select(practiceColumns).
		Where("NOT EXISTS (SELECT 1 FROM question_attempts qa WHERE qa.question_id = questions.id AND qa.user_id = ?)", userID)
	query = applyPracticeFilter(query, filter)

	err := query.Order("RANDOM()").Limit(limit).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetMatching возвращает вопросы по фильтру без исключения отвеченных,
// старые первыми. Используется как fallback при исчерпании новых вопросов.
func (r *QuestionRepo) GetMatching(filter repository.PracticeFilter, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	query := applyPracticeFilter(r.db.Model(&entity.Question{}).Select(practiceColumns), filter)

	err := query.Order("created_at ASC, id ASC").Limit(limit).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetRandomMatching возвращает случайные вопросы по фильтру без исключения отвеченных
func (r *QuestionRepo) GetRandomMatching(filter repository.PracticeFilter, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	query := applyPracticeFilter(r.db.Model(&entity.Question{}).Select(practiceColumns), filter)

	err := query.Order("RANDOM()").Limit(limit).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
