package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_BeforeSave_HashesPlainPassword(t *testing.T) {
	// Arrange
	user := &User{
		Username: "student",
		Email:    "student@example.com",
		Password: "plain-password-123",
	}

	// Act
	err := user.BeforeSave(nil)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, "plain-password-123", user.Password, "Пароль должен быть захеширован")
	assert.True(t, len(user.Password) > 0)
	// Хеш должен проверяться bcrypt-ом
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("plain-password-123")))
}

func TestUser_BeforeSave_DoesNotRehashBcrypt(t *testing.T) {
	// Arrange
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{Email: "student@example.com", Password: string(hashed)}

	// Act
	err = user.BeforeSave(nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(hashed), user.Password, "Готовый bcrypt-хеш не должен хешироваться повторно")
}

func TestUser_CheckPassword(t *testing.T) {
	// Arrange
	user := &User{Email: "student@example.com", Password: "correct-horse"}
	require.NoError(t, user.BeforeSave(nil))

	// Act & Assert
	assert.True(t, user.CheckPassword("correct-horse"))
	assert.False(t, user.CheckPassword("battery-staple"))
	assert.False(t, user.CheckPassword(""))
}
