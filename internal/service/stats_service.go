package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/yourusername/examprep-api/internal/domain/entity"
	"github.com/yourusername/examprep-api/internal/domain/repository"
	apperrors "github.com/yourusername/examprep-api/internal/pkg/errors"
)

// StatsService вычисляет статистику по каталогу вопросов и журналу попыток
type StatsService struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
}

// NewStatsService создает новый сервис статистики.
// cacheTTL <= 0 отключает кеширование глобальной статистики.
func NewStatsService(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// ComputeDimensionStats возвращает агрегаты по каждому значению измерения.
// При scopeUserID == nil область глобальная и результат кешируется в Redis;
// ошибки кеша не прерывают запрос, ошибки БД не маскируются кешем.
func (s *StatsService) ComputeDimensionStats(
	dimension repository.Dimension,
	scopeUserID *uint,
	order repository.SortOrder,
) ([]repository.DimensionStat, error) {
	if !dimension.IsValid() {
		return nil, fmt.Errorf("%w: неизвестное измерение '%s'", apperrors.ErrValidation, dimension)
	}
	switch order {
	case repository.OrderDefault, repository.OrderAsc, repository.OrderDesc:
	default:
		return nil, fmt.Errorf("%w: недопустимое направление сортировки '%s'", apperrors.ErrValidation, order)
	}

	cacheable := scopeUserID == nil && s.cacheRepo != nil && s.cacheTTL > 0
	cacheKey := fmt.Sprintf("stats:global:%s:%s", dimension, order)

	if cacheable {
		var cached []repository.DimensionStat
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	stats, err := s.statsRepo.GetDimensionStats(dimension, scopeUserID, order)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s stats: %w", dimension, err)
	}
	if stats == nil {
		stats = []repository.DimensionStat{}
	}

	// Порядок групп сложности фиксирован независимо от реализации репозитория
	if dimension == repository.DimensionDifficulty {
		sort.SliceStable(stats, func(i, j int) bool {
			return entity.DifficultyRank(stats[i].Value) < entity.DifficultyRank(stats[j].Value)
		})
	}

	if cacheable {
		if err := s.cacheRepo.SetJSON(cacheKey, stats, s.cacheTTL); err != nil {
			log.Printf("Предупреждение: не удалось закешировать статистику %s: %v", cacheKey, err)
		}
	}

	return stats, nil
}

// GetUserSubjectProgress возвращает прогресс пользователя по предметам
func (s *StatsService) GetUserSubjectProgress(userID uint) ([]repository.DimensionStat, error) {
	return s.ComputeDimensionStats(repository.DimensionSubject, &userID, repository.OrderDefault)
}

// InvalidateGlobalCache сбрасывает кешированную глобальную статистику.
// Вызывается при изменении каталога вопросов администратором.
func (s *StatsService) InvalidateGlobalCache() {
	if s.cacheRepo == nil {
		return
	}
	orders := []repository.SortOrder{repository.OrderDefault, repository.OrderAsc, repository.OrderDesc}
	for _, dim := range []repository.Dimension{
		repository.DimensionSubject,
		repository.DimensionTopic,
		repository.DimensionYear,
		repository.DimensionDifficulty,
	} {
		for _, order := range orders {
			key := fmt.Sprintf("stats:global:%s:%s", dim, order)
			if err := s.cacheRepo.Delete(key); err != nil {
				log.Printf("Предупреждение: не удалось сбросить кеш %s: %v", key, err)
			}
		}
	}
}

// GetUserStatistics возвращает сводку по каждому обычному пользователю
func (s *StatsService) GetUserStatistics() ([]repository.UserStatistics, error) {
	stats, err := s.statsRepo.GetUserStatistics()
	if err != nil {
		return nil, fmt.Errorf("failed to get user statistics: %w", err)
	}
	if stats == nil {
		stats = []repository.UserStatistics{}
	}
	return stats, nil
}
