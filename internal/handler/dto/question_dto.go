package dto

import (
	"time"

	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// PracticeQuestionResponse представляет вопрос для практики.
// Структура намеренно не содержит полей correct_option и explanation:
// правильный ответ не должен попадать в выдачу до проверки.
type PracticeQuestionResponse struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	OptionA    string `json:"option_a"`
	OptionB    string `json:"option_b"`
	OptionC    string `json:"option_c"`
	OptionD    string `json:"option_d"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Year       int    `json:"year"`
	Difficulty string `json:"difficulty"`
	IsFree     bool   `json:"is_free"`
}

// NewPracticeQuestionResponse создает DTO вопроса для практики
func NewPracticeQuestionResponse(q *entity.Question) PracticeQuestionResponse {
	return PracticeQuestionResponse{
		ID:         q.ID,
		Text:       q.Text,
		OptionA:    q.OptionA,
		OptionB:    q.OptionB,
		OptionC:    q.OptionC,
		OptionD:    q.OptionD,
		Subject:    q.Subject,
		Topic:      q.Topic,
		Year:       q.Year,
		Difficulty: q.Difficulty,
		IsFree:     q.IsFree,
	}
}

// NewPracticeQuestionListResponse создает список DTO вопросов для практики
func NewPracticeQuestionListResponse(questions []entity.Question) []PracticeQuestionResponse {
	responses := make([]PracticeQuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, NewPracticeQuestionResponse(&questions[i]))
	}
	return responses
}

// AdminQuestionResponse представляет вопрос со всеми полями для админки
type AdminQuestionResponse struct {
	ID            uint      `json:"id"`
	Text          string    `json:"text"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectOption string    `json:"correct_option"`
	Explanation   string    `json:"explanation"`
	Subject       string    `json:"subject"`
	Topic         string    `json:"topic"`
	Year          int       `json:"year"`
	Difficulty    string    `json:"difficulty"`
	IsFree        bool      `json:"is_free"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewAdminQuestionResponse создает DTO вопроса для админки
func NewAdminQuestionResponse(q *entity.Question) AdminQuestionResponse {
	return AdminQuestionResponse{
		ID:            q.ID,
		Text:          q.Text,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectOption: q.CorrectOption,
		Explanation:   q.Explanation,
		Subject:       q.Subject,
		Topic:         q.Topic,
		Year:          q.Year,
		Difficulty:    q.Difficulty,
		IsFree:        q.IsFree,
		CreatedBy:     q.CreatedBy,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

// NewAdminQuestionListResponse создает список DTO вопросов для админки
func NewAdminQuestionListResponse(questions []entity.Question) []AdminQuestionResponse {
	responses := make([]AdminQuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, NewAdminQuestionResponse(&questions[i]))
	}
	return responses
}

// AttemptResponse представляет запись журнала попыток
type AttemptResponse struct {
	ID         uint      `json:"id"`
	QuestionID uint      `json:"question_id"`
	Answer     string    `json:"answer"`
	IsCorrect  bool      `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAttemptListResponse создает список DTO попыток
func NewAttemptListResponse(attempts []entity.QuestionAttempt) []AttemptResponse {
	responses := make([]AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		responses = append(responses, AttemptResponse{
			ID:         a.ID,
			QuestionID: a.QuestionID,
			Answer:     a.Answer,
			IsCorrect:  a.IsCorrect,
			CreatedAt:  a.CreatedAt,
		})
	}
	return responses
}
