package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_IsAdmin(t *testing.T) {
	// Arrange
	policy := NewPolicy([]string{"admin@example.com", "  Second@Example.COM "})

	// Act & Assert
	assert.True(t, policy.IsAdmin("admin@example.com"), "адрес из списка должен иметь права")
	assert.True(t, policy.IsAdmin("ADMIN@example.com"), "сравнение не должно зависеть от регистра")
	assert.True(t, policy.IsAdmin("second@example.com"), "адрес нормализуется при создании политики")
	assert.False(t, policy.IsAdmin("user@example.com"), "адрес вне списка не имеет прав")
	assert.False(t, policy.IsAdmin(""), "пустой email не имеет прав")
}

func TestPolicy_EmptyList(t *testing.T) {
	// Arrange
	policy := NewPolicy(nil)

	// Act & Assert
	assert.False(t, policy.IsAdmin("admin@example.com"), "при пустом списке никто не администратор")
}
