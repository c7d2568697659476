package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/examprep-api/internal/domain/repository"
	"github.com/yourusername/examprep-api/internal/handler/dto"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// Режимы выдачи вопросов для практики
const (
	ModeSequential = "sequential"
	ModeRandom     = "random"
)

// PracticeHandler обрабатывает запросы практики
type PracticeHandler struct {
	practiceService *service.PracticeService
	questionService *service.QuestionService
}

// NewPracticeHandler создает новый обработчик практики
func NewPracticeHandler(
	practiceService *service.PracticeService,
	questionService *service.QuestionService,
) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		questionService: questionService,
	}
}

// GetSubjects возвращает предметы с количеством вопросов
// GET /api/practice/subjects
func (h *PracticeHandler) GetSubjects(c *gin.Context) {
	subjects, err := h.questionService.ListSubjects()
	if err != nil {
		h.handlePracticeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

// GetBatch возвращает пачку вопросов для практики
// GET /api/practice/batch?subject=&topic=&mode=sequential|random&batch_size=
func (h *PracticeHandler) GetBatch(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	filter := repository.PracticeFilter{
		Subject: c.Query("subject"),
		Topic:   c.Query("topic"),
	}

	batchSize := 0
	if raw := c.Query("batch_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch_size"})
			return
		}
		batchSize = parsed
	}

	mode := c.DefaultQuery("mode", ModeSequential)

	var questions []dto.PracticeQuestionResponse
	switch mode {
	case ModeSequential:
		selected, err := h.practiceService.SelectNextUnattempted(userID, filter, batchSize)
		if err != nil {
			h.handlePracticeError(c, err)
			return
		}
		questions = dto.NewPracticeQuestionListResponse(selected)
	case ModeRandom:
		selected, err := h.practiceService.SelectRandom(userID, filter, batchSize)
		if err != nil {
			h.handlePracticeError(c, err)
			return
		}
		questions = dto.NewPracticeQuestionListResponse(selected)
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "mode must be 'sequential' or 'random'"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":      mode,
		"questions": questions,
	})
}

// SubmitAnswerRequest представляет запрос на отправку ответа
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// SubmitAnswer обрабатывает отправку ответа на вопрос
// POST /api/practice/answer
func (h *PracticeHandler) SubmitAnswer(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.practiceService.SubmitAnswer(userID, req.QuestionID, req.Answer)
	if err != nil {
		h.handlePracticeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyAttempts возвращает страницу истории попыток текущего пользователя
// GET /api/users/me/attempts?limit=&offset=
func (h *PracticeHandler) GetMyAttempts(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	attempts, err := h.practiceService.GetUserAttempts(userID, limit, offset)
	if err != nil {
		h.handlePracticeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempts": dto.NewAttemptListResponse(attempts)})
}

// handlePracticeError обрабатывает ошибки сервисов практики
func (h *PracticeHandler) handlePracticeError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in PracticeHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
