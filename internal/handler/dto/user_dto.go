package dto

import (
	"time"

	"github.com/yourusername/examprep-api/internal/domain/entity"
)

// UserResponse представляет пользователя в ответах API
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse создает DTO пользователя
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse представляет ответ на вход: пользователь и токен доступа
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewAuthResponse создает DTO ответа аутентификации
func NewAuthResponse(u *entity.User, token string) AuthResponse {
	return AuthResponse{
		User:  NewUserResponse(u),
		Token: token,
	}
}
