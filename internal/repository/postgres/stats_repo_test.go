package postgres

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
)

// newTestDB открывает чистую in-memory базу со схемой доменных сущностей
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Question{},
		&entity.QuestionAttempt{},
		&entity.MockTest{},
		&entity.MockTestAttempt{},
	))
	return db
}

func seedQuestion(t *testing.T, db *gorm.DB, subject, difficulty string, year int) *entity.Question {
	t.Helper()
	q := &entity.Question{
		Text:          "q",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectOption: "A",
		Explanation:   "e",
		Subject:       subject,
		Topic:         "t",
		Year:          year,
		Difficulty:    difficulty,
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func seedAttempt(t *testing.T, db *gorm.DB, userID, questionID uint, isCorrect bool) {
	t.Helper()
	require.NoError(t, db.Create(&entity.QuestionAttempt{
		UserID:     userID,
		QuestionID: questionID,
		Answer:     "A",
		IsCorrect:  isCorrect,
	}).Error)
}

func seedUser(t *testing.T, db *gorm.DB, username, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: email, Password: "password123", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestStatsRepo_GetDimensionStats_ByDifficulty(t *testing.T) {
	// Arrange: три Easy-вопроса, из них у пользователя две попытки по
	// разным вопросам и только одна правильная; один Hard без попыток
	db := newTestDB(t)
	repo := NewStatsRepo(db)
	user := seedUser(t, db, "student", "student@example.com", entity.RoleUser)

	e1 := seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	e2 := seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	seedQuestion(t, db, "Math", entity.DifficultyHard, 2024)

	seedAttempt(t, db, user.ID, e1.ID, true)
	seedAttempt(t, db, user.ID, e2.ID, false)

	// Act
	stats, err := repo.GetDimensionStats(repository.DimensionDifficulty, nil, repository.OrderDefault)

	// Assert
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "Easy", stats[0].Value)
	assert.Equal(t, 3, stats[0].TotalQuestions)
	assert.Equal(t, 2, stats[0].AttemptedQuestions)
	assert.Equal(t, 50.0, stats[0].Accuracy)

	assert.Equal(t, "Hard", stats[1].Value)
	assert.Equal(t, 1, stats[1].TotalQuestions)
	assert.Equal(t, 0, stats[1].AttemptedQuestions)
	assert.Equal(t, 0.0, stats[1].Accuracy, "без попыток точность ровно 0, а не деление на ноль")
}

func TestStatsRepo_GetDimensionStats_RepeatAttemptsCountOnce(t *testing.T) {
	// Arrange: несколько попыток по одному вопросу дают один отвеченный;
	// вопрос правильный, если правильная хотя бы одна попытка
	db := newTestDB(t)
	repo := NewStatsRepo(db)
	user := seedUser(t, db, "student", "student@example.com", entity.RoleUser)

	q := seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	seedAttempt(t, db, user.ID, q.ID, false)
	seedAttempt(t, db, user.ID, q.ID, false)
	seedAttempt(t, db, user.ID, q.ID, true)

	// Act
	stats, err := repo.GetDimensionStats(repository.DimensionSubject, nil, repository.OrderDefault)

	// Assert
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].AttemptedQuestions, "повторные попытки не увеличивают счетчик")
	assert.Equal(t, 100.0, stats[0].Accuracy)
}

func TestStatsRepo_GetDimensionStats_ScopeIsolation(t *testing.T) {
	// Arrange: попытки второго пользователя не попадают в личную область
	db := newTestDB(t)
	repo := NewStatsRepo(db)
	alice := seedUser(t, db, "alice", "alice@example.com", entity.RoleUser)
	bob := seedUser(t, db, "bob", "bob@example.com", entity.RoleUser)

	q1 := seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	q2 := seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	seedAttempt(t, db, alice.ID, q1.ID, true)
	seedAttempt(t, db, bob.ID, q2.ID, true)

	// Act
	scoped, err := repo.GetDimensionStats(repository.DimensionSubject, &alice.ID, repository.OrderDefault)
	require.NoError(t, err)
	global, err := repo.GetDimensionStats(repository.DimensionSubject, nil, repository.OrderDefault)
	require.NoError(t, err)

	// Assert
	require.Len(t, scoped, 1)
	assert.Equal(t, 1, scoped[0].AttemptedQuestions, "в личной области только попытки владельца")
	require.Len(t, global, 1)
	assert.Equal(t, 2, global[0].AttemptedQuestions, "глобальная область объединяет всех пользователей")
}

func TestStatsRepo_GetDimensionStats_YearOrder(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := NewStatsRepo(db)
	seedQuestion(t, db, "Math", entity.DifficultyEasy, 2022)
	seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	seedQuestion(t, db, "Math", entity.DifficultyEasy, 2023)

	// Act
	desc, err := repo.GetDimensionStats(repository.DimensionYear, nil, repository.OrderDefault)
	require.NoError(t, err)
	asc, err := repo.GetDimensionStats(repository.DimensionYear, nil, repository.OrderAsc)
	require.NoError(t, err)

	// Assert: по умолчанию новые годы первыми, явный asc переворачивает
	assert.Equal(t, []string{"2024", "2023", "2022"}, []string{desc[0].Value, desc[1].Value, desc[2].Value})
	assert.Equal(t, []string{"2022", "2023", "2024"}, []string{asc[0].Value, asc[1].Value, asc[2].Value})
}

func TestStatsRepo_GetUserStatistics(t *testing.T) {
	// Arrange: администратор в сводку не попадает; точность по различным
	// вопросам; средний балл по пробным экзаменам
	db := newTestDB(t)
	repo := NewStatsRepo(db)
	student := seedUser(t, db, "student", "student@example.com", entity.RoleUser)
	seedUser(t, db, "admin", "admin@example.com", entity.RoleAdmin)

	q1 := seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	q2 := seedQuestion(t, db, "Math", entity.DifficultyEasy, 2024)
	seedAttempt(t, db, student.ID, q1.ID, true)
	seedAttempt(t, db, student.ID, q2.ID, false)

	mockTest := &entity.MockTest{Title: "Trial", Subject: "Math"}
	require.NoError(t, db.Create(mockTest).Error)
	require.NoError(t, db.Create(&entity.MockTestAttempt{
		UserID: student.ID, MockTestID: mockTest.ID, Score: 70, StartedAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&entity.MockTestAttempt{
		UserID: student.ID, MockTestID: mockTest.ID, Score: 90, StartedAt: time.Now(),
	}).Error)

	// Act
	stats, err := repo.GetUserStatistics()

	// Assert
	require.NoError(t, err)
	require.Len(t, stats, 1, "в сводке только обычные пользователи")
	assert.Equal(t, student.ID, stats[0].UserID)
	assert.Equal(t, 2, stats[0].AttemptedQuestions)
	assert.Equal(t, 50.0, stats[0].Accuracy)
	assert.Equal(t, 2, stats[0].MockTestsTaken)
	assert.Equal(t, 80.0, stats[0].AverageScore)
}
