package repository

import "time"

// CacheRepository определяет методы для работы с кешем.
// Интерфейс намеренно узкий: кеш хранит только JSON-снимки
// статистических агрегатов.
type CacheRepository interface {
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}
