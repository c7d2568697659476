package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service"
)

// StatsHandler обрабатывает запросы статистики
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler создает новый обработчик статистики
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetDimensionStats возвращает агрегаты по значениям измерения
// GET /api/stats/:dimension?scope_user_id=&order=
func (h *StatsHandler) GetDimensionStats(c *gin.Context) {
	dimension := repository.Dimension(c.Param("dimension"))
	order := repository.SortOrder(c.Query("order"))

	var scopeUserID *uint
	if raw := c.Query("scope_user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope_user_id"})
			return
		}
		uid := uint(id)
		scopeUserID = &uid
	}

	stats, err := h.statsService.ComputeDimensionStats(dimension, scopeUserID, order)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dimension": dimension,
		"stats":     stats,
	})
}

// GetMyProgress возвращает прогресс текущего пользователя по предметам
// GET /api/users/me/stats
func (h *StatsHandler) GetMyProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	stats, err := h.statsService.GetUserSubjectProgress(userID)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dimension": repository.DimensionSubject,
		"stats":     stats,
	})
}

// handleStatsError обрабатывает ошибки сервиса статистики
func (h *StatsHandler) handleStatsError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in StatsHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
