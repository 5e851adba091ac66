package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/colibri-edu/content-service/internal/cache"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
)

type AreaPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAreaPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AreaRepository {
	return &AreaPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (a *AreaPostgreSQL) Create(ctx context.Context, area *models.Area) error {
	if err := a.db.WithContext(ctx).Create(area).Error; err != nil {
		return fmt.Errorf("failed to create area: %w", repositories.ClassifyError(err))
	}

	cache.InvalidateTable(ctx, a.cacheManager, "areas")
	return nil
}

func (a *AreaPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Area, error) {
	var area models.Area
	if err := a.db.WithContext(ctx).First(&area, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get area %d: %w", id, repositories.ClassifyError(err))
	}
	return &area, nil
}

func (a *AreaPostgreSQL) List(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area

	err := a.cacheManager.Hierarchy.CacheOrExecute(ctx, "areas:list", &areas, cache.HierarchyCacheConfig.TTL, func() (interface{}, error) {
		var rows []models.Area
		if err := a.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list areas: %w", repositories.ClassifyError(err))
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return areas, nil
}

func (a *AreaPostgreSQL) ListByGrado(ctx context.Context, gradoID uint) ([]models.Area, error) {
	var areas []models.Area
	if err := a.db.WithContext(ctx).Where("grado_id = ?", gradoID).Order("id").Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to list areas for grado %d: %w", gradoID, repositories.ClassifyError(err))
	}
	return areas, nil
}

func (a *AreaPostgreSQL) Update(ctx context.Context, area *models.Area) error {
	result := a.db.WithContext(ctx).Model(&models.Area{}).Where("id = ?", area.ID).
		Updates(map[string]any{"nombre": area.Nombre, "grado_id": area.GradoID})
	if result.Error != nil {
		return fmt.Errorf("failed to update area %d: %w", area.ID, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update area %d: %w", area.ID, repositories.ErrNotFound)
	}

	cache.InvalidateTable(ctx, a.cacheManager, "areas")
	return nil
}

func (a *AreaPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := a.db.WithContext(ctx).Delete(&models.Area{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete area %d: %w", id, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete area %d: %w", id, repositories.ErrNotFound)
	}

	cache.InvalidateTable(ctx, a.cacheManager, "areas")
	return nil
}

func (a *AreaPostgreSQL) DeleteAll(ctx context.Context) error {
	if err := a.db.WithContext(ctx).Where("1 = 1").Delete(&models.Area{}).Error; err != nil {
		return fmt.Errorf("failed to delete areas: %w", repositories.ClassifyError(err))
	}
	return nil
}

func (a *AreaPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Area{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count areas: %w", repositories.ClassifyError(err))
	}
	return count, nil
}
