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

type UsuarioPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUsuarioPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UsuarioRepository {
	return &UsuarioPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (u *UsuarioPostgreSQL) Create(ctx context.Context, usuario *models.Usuario) error {
	if err := u.db.WithContext(ctx).Create(usuario).Error; err != nil {
		return fmt.Errorf("failed to create usuario: %w", repositories.ClassifyError(err))
	}

	cache.SafeInvalidatePattern(ctx, u.cacheManager.Exists, "email:*")
	cache.SafeInvalidatePattern(ctx, u.cacheManager.Stats, "*")
	return nil
}

func (u *UsuarioPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := u.db.WithContext(ctx).First(&usuario, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get usuario %d: %w", id, repositories.ClassifyError(err))
	}
	return &usuario, nil
}

func (u *UsuarioPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := u.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error; err != nil {
		return nil, fmt.Errorf("failed to get usuario by email: %w", repositories.ClassifyError(err))
	}
	return &usuario, nil
}

// EmailExists is the public check-email probe, cached briefly.
func (u *UsuarioPostgreSQL) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool

	cacheKey := fmt.Sprintf("email:%s", email)
	err := u.cacheManager.Exists.CacheOrExecute(ctx, cacheKey, &exists, cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
		var count int64
		if err := u.db.WithContext(ctx).Model(&models.Usuario{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check email: %w", repositories.ClassifyError(err))
		}
		return count > 0, nil
	})
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (u *UsuarioPostgreSQL) List(ctx context.Context) ([]models.Usuario, error) {
	var usuarios []models.Usuario
	if err := u.db.WithContext(ctx).Order("id").Find(&usuarios).Error; err != nil {
		return nil, fmt.Errorf("failed to list usuarios: %w", repositories.ClassifyError(err))
	}
	return usuarios, nil
}

// Update changes profile fields only; password stays whatever it was.
func (u *UsuarioPostgreSQL) Update(ctx context.Context, usuario *models.Usuario) error {
	result := u.db.WithContext(ctx).Model(&models.Usuario{}).Where("id = ?", usuario.ID).
		Updates(map[string]any{
			"nombre": usuario.Nombre,
			"email":  usuario.Email,
			"rol":    usuario.Rol,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update usuario %d: %w", usuario.ID, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update usuario %d: %w", usuario.ID, repositories.ErrNotFound)
	}

	cache.SafeInvalidatePattern(ctx, u.cacheManager.Exists, "email:*")
	return nil
}

func (u *UsuarioPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := u.db.WithContext(ctx).Delete(&models.Usuario{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete usuario %d: %w", id, repositories.ClassifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete usuario %d: %w", id, repositories.ErrNotFound)
	}

	cache.SafeInvalidatePattern(ctx, u.cacheManager.Exists, "email:*")
	cache.SafeInvalidatePattern(ctx, u.cacheManager.Stats, "*")
	return nil
}

func (u *UsuarioPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := u.db.WithContext(ctx).Model(&models.Usuario{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count usuarios: %w", repositories.ClassifyError(err))
	}
	return count, nil
}
