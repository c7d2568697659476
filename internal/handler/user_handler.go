package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/examprep-api/internal/service"
)

// UserHandler обрабатывает запросы личного кабинета
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик личного кабинета
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyDashboard возвращает сводку личного кабинета текущего пользователя
// GET /api/users/me/dashboard
func (h *UserHandler) GetMyDashboard(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	dashboard, err := h.userService.GetDashboard(userID)
	if err != nil {
		log.Printf("ERROR: Internal server error in UserHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
