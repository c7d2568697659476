package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

func TestJWTService_GenerateAndParse(t *testing.T) {
	// Arrange
	service, err := NewJWTService("test-secret", 1)
	require.NoError(t, err)
	user := &entity.User{ID: 42, Email: "user@example.com", Role: entity.RoleUser}

	// Act
	token, err := service.GenerateToken(user)
	require.NoError(t, err)
	claims, err := service.ParseToken(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID, "UserID должен совпадать")
	assert.Equal(t, "user@example.com", claims.Email, "Email должен совпадать")
	assert.Equal(t, entity.RoleUser, claims.Role, "Role должна совпадать")
	assert.NotEmpty(t, claims.ID, "jti должен быть установлен")
}

func TestJWTService_ParseToken_WrongSecret(t *testing.T) {
	// Arrange
	service1, err := NewJWTService("secret-one", 1)
	require.NoError(t, err)
	service2, err := NewJWTService("secret-two", 1)
	require.NoError(t, err)
	user := &entity.User{ID: 1, Email: "user@example.com", Role: entity.RoleUser}
	token, err := service1.GenerateToken(user)
	require.NoError(t, err)

	// Act
	_, err = service2.ParseToken(token)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "токен с неверной подписью должен отклоняться")
}

func TestJWTService_ParseToken_Expired(t *testing.T) {
	// Arrange: токен с истекшим сроком действия, подписанный тем же секретом
	service, err := NewJWTService("test-secret", 1)
	require.NoError(t, err)
	claims := &JWTCustomClaims{
		UserID: 1,
		Email:  "user@example.com",
		Role:   entity.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	// Act
	_, err = service.ParseToken(expired)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "истекший токен должен отклоняться")
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService("", 1)
	assert.Error(t, err, "пустой секрет недопустим")
}
