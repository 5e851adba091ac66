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

type TemaPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTemaPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.TemaRepository {
	return &TemaPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (t *TemaPostgreSQL) Create(ctx context.Context, tema *models.Tema) error {
	if err := t.db.WithContext(ctx).Create(tema).Error; err != nil {
		return fmt.Errorf("failed to create tema: %w", repositories.ClassifyError(err))
	}

	cache.InvalidateTable(ctx, t.cacheManager, "temas")
	return nil
}

func (t *TemaPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Tema, error) {
	var tema models.Tema
	if err := t.db.WithContext(ctx).First(&tema, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get tema %d: %w", id, repositories.ClassifyError(err))
	}
	return &tema, nil
}

func (t *TemaPostgreSQL) List(ctx context.Context) ([]models.Tema, error) {
	var temas []models.Tema

	err := t.cacheManager.Hierarchy.CacheOrExecute(ctx, "temas:list", &temas, cache.HierarchyCacheConfig.TTL, func() (interface{}, error) {
		var rows []models.Tema
		if err := t.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list temas: %w", repositories.ClassifyError(err))
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return temas, nil
}

func (t *TemaPostgreSQL) ListByArea(ctx context.Context, areaID uint) ([]models.Tema, error) {
	var temas []models.Tema
	if err := t.db.WithContext(ctx).Where("area_id = ?", areaID).Order("id").Find(&temas).Error; err != nil {
		return nil, fmt.Errorf("failed to list temas for area %d: %w", areaID, repositories.ClassifyError(err))
	}
	return temas, nil
}

func (t *TemaPostgreSQL) Update(ctx context.Context, tema *models.Tema) error {
	result := t.db.WithContext(ctx).Model(&models.Tema{}).Where("id = ?", tema.ID).
		Updates(map[string]any{"nombre": tema.Nombre, "area_id": tema.AreaID})
	if result.Error != nil {
		return fmt.Errorf("failed to update tema %d: %w", tema.ID, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update tema %d: %w", tema.ID, repositories.ErrNotFound)
	}

	cache.InvalidateTable(ctx, t.cacheManager, "temas")
	return nil
}

func (t *TemaPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := t.db.WithContext(ctx).Delete(&models.Tema{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tema %d: %w", id, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete tema %d: %w", id, repositories.ErrNotFound)
	}

	cache.InvalidateTable(ctx, t.cacheManager, "temas")
	return nil
}

func (t *TemaPostgreSQL) DeleteAll(ctx context.Context) error {
	if err := t.db.WithContext(ctx).Where("1 = 1").Delete(&models.Tema{}).Error; err != nil {
		return fmt.Errorf("failed to delete temas: %w", repositories.ClassifyError(err))
	}
	return nil
}

func (t *TemaPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := t.db.WithContext(ctx).Model(&models.Tema{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count temas: %w", repositories.ClassifyError(err))
	}
	return count, nil
}
