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

type ArticuloPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewArticuloPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ArticuloRepository {
	return &ArticuloPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (a *ArticuloPostgreSQL) Create(ctx context.Context, articulo *models.Articulo) error {
	if err := a.db.WithContext(ctx).Create(articulo).Error; err != nil {
		return fmt.Errorf("failed to create articulo: %w", repositories.ClassifyError(err))
	}

	cache.InvalidateTable(ctx, a.cacheManager, "articulos")
	return nil
}

func (a *ArticuloPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Articulo, error) {
	var articulo models.Articulo

	cacheKey := fmt.Sprintf("id:%d", id)
	err := a.cacheManager.Articulo.CacheOrExecute(ctx, cacheKey, &articulo, cache.ArticuloCacheConfig.TTL, func() (interface{}, error) {
		var row models.Articulo
		if err := a.db.WithContext(ctx).First(&row, id).Error; err != nil {
			return nil, fmt.Errorf("failed to get articulo %d: %w", id, repositories.ClassifyError(err))
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}

	return &articulo, nil
}

// List returns articles ordered by id, optionally narrowed by hierarchy level.
// Filtered listings bypass the cache; the unfiltered one is what the reading
// UI hammers.
func (a *ArticuloPostgreSQL) List(ctx context.Context, filter repositories.ArticuloFilter) ([]models.Articulo, error) {
	if filter != (repositories.ArticuloFilter{}) {
		return a.listFiltered(ctx, filter)
	}

	var articulos []models.Articulo
	err := a.cacheManager.Hierarchy.CacheOrExecute(ctx, "articulos:list", &articulos, cache.HierarchyCacheConfig.TTL, func() (interface{}, error) {
		var rows []models.Articulo
		if err := a.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list articulos: %w", repositories.ClassifyError(err))
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return articulos, nil
}

func (a *ArticuloPostgreSQL) listFiltered(ctx context.Context, filter repositories.ArticuloFilter) ([]models.Articulo, error) {
	query := a.db.WithContext(ctx)
	if filter.GradoID != 0 {
		query = query.Where("grado_id = ?", filter.GradoID)
	}
	if filter.AreaID != 0 {
		query = query.Where("area_id = ?", filter.AreaID)
	}
	if filter.TemaID != 0 {
		query = query.Where("tema_id = ?", filter.TemaID)
	}

	var articulos []models.Articulo
	if err := query.Order("id").Find(&articulos).Error; err != nil {
		return nil, fmt.Errorf("failed to list articulos: %w", repositories.ClassifyError(err))
	}
	return articulos, nil
}

// Update rewrites the mutable columns and refreshes updated_at server-side.
// The caller resolves usuario_id before this point (COALESCE semantics live in
// the service).
func (a *ArticuloPostgreSQL) Update(ctx context.Context, articulo *models.Articulo) error {
	result := a.db.WithContext(ctx).Model(&models.Articulo{}).Where("id = ?", articulo.ID).
		Updates(map[string]any{
			"titulo":     articulo.Titulo,
			"contenido":  articulo.Contenido,
			"grado_id":   articulo.GradoID,
			"area_id":    articulo.AreaID,
			"tema_id":    articulo.TemaID,
			"usuario_id": articulo.UsuarioID,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update articulo %d: %w", articulo.ID, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update articulo %d: %w", articulo.ID, repositories.ErrNotFound)
	}

	cache.InvalidateTable(ctx, a.cacheManager, "articulos")
	return nil
}

func (a *ArticuloPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := a.db.WithContext(ctx).Delete(&models.Articulo{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete articulo %d: %w", id, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete articulo %d: %w", id, repositories.ErrNotFound)
	}

	cache.InvalidateTable(ctx, a.cacheManager, "articulos")
	return nil
}

func (a *ArticuloPostgreSQL) DeleteAll(ctx context.Context) error {
	if err := a.db.WithContext(ctx).Where("1 = 1").Delete(&models.Articulo{}).Error; err != nil {
		return fmt.Errorf("failed to delete articulos: %w", repositories.ClassifyError(err))
	}
	return nil
}

func (a *ArticuloPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Articulo{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count articulos: %w", repositories.ClassifyError(err))
	}
	return count, nil
}
