package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
	"github.com/yourusername/examprep-api/internal/service/access"
	"github.com/yourusername/examprep-api/pkg/auth"
)

// AuthService реализует регистрацию и вход пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	policy     *access.Policy
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	policy *access.Policy,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		policy:     policy,
	}
}

// Register регистрирует нового пользователя.
// Пароль хешируется bcrypt в хуке BeforeSave сущности.
func (s *AuthService) Register(username, email, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username и email обязательны", apperrors.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: пароль должен содержать не менее 6 символов", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: пользователь с таким email уже существует", apperrors.ErrConflict)
	}

	role := entity.RoleUser
	if s.policy.IsAdmin(email) {
		role = entity.RoleAdmin
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя с JWT токеном
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: неверный email или пароль", apperrors.ErrUnauthorized)
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: неверный email или пароль", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// GetUserByID возвращает пользователя по идентификатору
func (s *AuthService) GetUserByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}
