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

type GradoPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewGradoPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.GradoRepository {
	return &GradoPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (g *GradoPostgreSQL) Create(ctx context.Context, grado *models.Grado) error {
	if err := g.db.WithContext(ctx).Create(grado).Error; err != nil {
		return fmt.Errorf("failed to create grado: %w", repositories.ClassifyError(err))
	}

	cache.InvalidateTable(ctx, g.cacheManager, "grados")
	return nil
}

func (g *GradoPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Grado, error) {
	var grado models.Grado
	if err := g.db.WithContext(ctx).First(&grado, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get grado %d: %w", id, repositories.ClassifyError(err))
	}
	return &grado, nil
}

// List returns every grado ordered by id, served from cache when possible.
func (g *GradoPostgreSQL) List(ctx context.Context) ([]models.Grado, error) {
	var grados []models.Grado

	err := g.cacheManager.Hierarchy.CacheOrExecute(ctx, "grados:list", &grados, cache.HierarchyCacheConfig.TTL, func() (interface{}, error) {
		var rows []models.Grado
		if err := g.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list grados: %w", repositories.ClassifyError(err))
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return grados, nil
}

func (g *GradoPostgreSQL) Update(ctx context.Context, grado *models.Grado) error {
	result := g.db.WithContext(ctx).Model(&models.Grado{}).Where("id = ?", grado.ID).Update("nombre", grado.Nombre)
	if result.Error != nil {
		return fmt.Errorf("failed to update grado %d: %w", grado.ID, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update grado %d: %w", grado.ID, repositories.ErrNotFound)
	}

	cache.InvalidateTable(ctx, g.cacheManager, "grados")
	return nil
}

func (g *GradoPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := g.db.WithContext(ctx).Delete(&models.Grado{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete grado %d: %w", id, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete grado %d: %w", id, repositories.ErrNotFound)
	}

	cache.InvalidateTable(ctx, g.cacheManager, "grados")
	return nil
}

// DeleteAll removes every grado. Only restore/clear call this, inside a
// transaction, after dependent tables are emptied.
func (g *GradoPostgreSQL) DeleteAll(ctx context.Context) error {
	if err := g.db.WithContext(ctx).Where("1 = 1").Delete(&models.Grado{}).Error; err != nil {
		return fmt.Errorf("failed to delete grados: %w", repositories.ClassifyError(err))
	}
	return nil
}

func (g *GradoPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := g.db.WithContext(ctx).Model(&models.Grado{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count grados: %w", repositories.ClassifyError(err))
	}
	return count, nil
}
