// Package access содержит единую политику доступа к административной консоли.
package access

import "strings"

// Policy проверяет права администратора по allow-list email-адресов.
// Список задается конфигурацией и является единственным авторитетным
// источником: поле role в таблице users носит справочный характер.
type Policy struct {
	adminEmails map[string]struct{}
}

// NewPolicy создает политику доступа из списка email администраторов.
// Адреса нормализуются: обрезаются пробелы, регистр приводится к нижнему.
func NewPolicy(adminEmails []string) *Policy {
	emails := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		normalized := strings.ToLower(strings.TrimSpace(email))
		if normalized == "" {
			continue
		}
		emails[normalized] = struct{}{}
	}
	return &Policy{adminEmails: emails}
}

// IsAdmin сообщает, имеет ли пользователь с данным email права администратора
func (p *Policy) IsAdmin(email string) bool {
	_, ok := p.adminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
