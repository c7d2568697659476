package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	"github.com/yourusername/examprep-api/internal/handler/dto"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// AdminHandler обрабатывает запросы административной консоли
type AdminHandler struct {
	questionService *service.QuestionService
	adminService    *service.AdminService
}

// NewAdminHandler создает новый обработчик администрирования
func NewAdminHandler(
	questionService *service.QuestionService,
	adminService *service.AdminService,
) *AdminHandler {
	return &AdminHandler{
		questionService: questionService,
		adminService:    adminService,
	}
}

// QuestionRequest представляет запрос на создание или обновление вопроса
type QuestionRequest struct {
	Text          string `json:"text" binding:"required,min=3,max=2000"`
	OptionA       string `json:"option_a" binding:"required,max=500"`
	OptionB       string `json:"option_b" binding:"required,max=500"`
	OptionC       string `json:"option_c" binding:"required,max=500"`
	OptionD       string `json:"option_d" binding:"required,max=500"`
	CorrectOption string `json:"correct_option" binding:"required"`
	Explanation   string `json:"explanation" binding:"required,max=2000"`
	Subject       string `json:"subject" binding:"required,max=100"`
	Topic         string `json:"topic" binding:"required,max=100"`
	Year          int    `json:"year" binding:"required"`
	Difficulty    string `json:"difficulty" binding:"required"`
	IsFree        bool   `json:"is_free"`
}

func (r *QuestionRequest) toInput() *service.QuestionInput {
	return &service.QuestionInput{
		Text:          r.Text,
		OptionA:       r.OptionA,
		OptionB:       r.OptionB,
		OptionC:       r.OptionC,
		OptionD:       r.OptionD,
		CorrectOption: r.CorrectOption,
		Explanation:   r.Explanation,
		Subject:       r.Subject,
		Topic:         r.Topic,
		Year:          r.Year,
		Difficulty:    r.Difficulty,
		IsFree:        r.IsFree,
	}
}

// CreateQuestion обрабатывает создание вопроса
// POST /api/admin/questions
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdBy := c.MustGet("email").(string)
	question, err := h.questionService.CreateQuestion(req.toInput(), createdBy)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAdminQuestionResponse(question))
}

// ListQuestions возвращает вопросы с фильтрами, новые первыми
// GET /api/admin/questions?subject=&topic=&difficulty=&year=
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	filters, err := parseQuestionFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.questionService.ListQuestions(filters)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": dto.NewAdminQuestionListResponse(questions)})
}

// GetQuestion возвращает один вопрос со всеми полями
// GET /api/admin/questions/:id
func (h *AdminHandler) GetQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	question, err := h.questionService.GetQuestion(questionID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionResponse(question))
}

// UpdateQuestion обрабатывает обновление вопроса
// PUT /api/admin/questions/:id
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(questionID, req.toInput())
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionResponse(question))
}

// DeleteQuestion обрабатывает удаление вопроса
// DELETE /api/admin/questions/:id
func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// GetDashboard возвращает сводку для главной страницы админки
// GET /api/admin/stats
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.adminService.GetDashboard()
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	userStats, err := h.adminService.GetUserStatistics()
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": dashboard,
		"users":   userStats,
	})
}

// ExportQuestions экспортирует каталог вопросов в CSV или Excel формате
// GET /api/admin/questions/export?format=csv|xlsx&subject=&topic=&difficulty=&year=
func (h *AdminHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	filters, err := parseQuestionFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.questionService.ListQuestions(filters)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, questions, filename)
	default:
		h.exportCSV(c, questions, filename)
	}
}

// parseQuestionFilters извлекает фильтры каталога из query-параметров
func parseQuestionFilters(c *gin.Context) (repository.QuestionFilters, error) {
	filters := repository.QuestionFilters{
		Subject:    c.Query("subject"),
		Topic:      c.Query("topic"),
		Difficulty: c.Query("difficulty"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filters, fmt.Errorf("invalid year")
		}
		filters.Year = year
	}
	return filters, nil
}

var exportHeaders = []string{
	"ID", "Текст", "Вариант A", "Вариант B", "Вариант C", "Вариант D",
	"Правильный", "Пояснение", "Предмет", "Тема", "Год", "Сложность", "Бесплатный",
}

// exportCSV экспортирует вопросы в CSV с правильным экранированием спецсимволов
func (h *AdminHandler) exportCSV(c *gin.Context, questions []entity.Question, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)

	for _, q := range questions {
		isFree := "Нет"
		if q.IsFree {
			isFree = "Да"
		}
		writer.Write([]string{
			strconv.Itoa(int(q.ID)),
			sanitizeForExcel(q.Text),
			sanitizeForExcel(q.OptionA),
			sanitizeForExcel(q.OptionB),
			sanitizeForExcel(q.OptionC),
			sanitizeForExcel(q.OptionD),
			q.CorrectOption,
			sanitizeForExcel(q.Explanation),
			sanitizeForExcel(q.Subject),
			sanitizeForExcel(q.Topic),
			strconv.Itoa(q.Year),
			q.Difficulty,
			isFree,
		})
	}
}

// exportXLSX экспортирует вопросы в Excel с использованием StreamWriter
func (h *AdminHandler) exportXLSX(c *gin.Context, questions []entity.Question, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, header := range exportHeaders {
		headers[i] = header
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	for i, q := range questions {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		isFree := "Нет"
		if q.IsFree {
			isFree = "Да"
		}

		row := []interface{}{
			q.ID,
			sanitizeForExcel(q.Text),
			sanitizeForExcel(q.OptionA),
			sanitizeForExcel(q.OptionB),
			sanitizeForExcel(q.OptionC),
			sanitizeForExcel(q.OptionD),
			q.CorrectOption,
			sanitizeForExcel(q.Explanation),
			sanitizeForExcel(q.Subject),
			sanitizeForExcel(q.Topic),
			q.Year,
			q.Difficulty,
			isFree,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleAdminError обрабатывает ошибки административных сервисов
func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AdminHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
