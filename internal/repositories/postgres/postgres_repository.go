package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/colibri-edu/content-service/internal/cache"
	"github.com/colibri-edu/content-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	grado    repositories.GradoRepository
	area     repositories.AreaRepository
	tema     repositories.TemaRepository
	articulo repositories.ArticuloRepository
	usuario  repositories.UsuarioRepository
	tabla    repositories.TablaRepository
	stats    repositories.StatsRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository manager with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cache.NewCacheManager(config.RedisClient),
	}

	repo.grado = NewGradoPostgreSQL(config.DB, config.RedisClient)
	repo.area = NewAreaPostgreSQL(config.DB, config.RedisClient)
	repo.tema = NewTemaPostgreSQL(config.DB, config.RedisClient)
	repo.articulo = NewArticuloPostgreSQL(config.DB, config.RedisClient)
	repo.usuario = NewUsuarioPostgreSQL(config.DB, config.RedisClient)
	repo.tabla = NewTablaPostgreSQL(config.DB, config.RedisClient)
	repo.stats = NewStatsPostgreSQL(config.DB)

	return repo
}

func (r *PostgreSQLRepository) Grado() repositories.GradoRepository       { return r.grado }
func (r *PostgreSQLRepository) Area() repositories.AreaRepository         { return r.area }
func (r *PostgreSQLRepository) Tema() repositories.TemaRepository         { return r.tema }
func (r *PostgreSQLRepository) Articulo() repositories.ArticuloRepository { return r.articulo }
func (r *PostgreSQLRepository) Usuario() repositories.UsuarioRepository   { return r.usuario }
func (r *PostgreSQLRepository) Tabla() repositories.TablaRepository       { return r.tabla }
func (r *PostgreSQLRepository) Stats() repositories.StatsRepository       { return r.stats }

// WithTransaction executes a function within a database transaction. Restore
// and clear depend on this: every sub-repository the callback sees is bound to
// the same transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}

		txRepo.grado = NewGradoPostgreSQL(tx, r.redisClient)
		txRepo.area = NewAreaPostgreSQL(tx, r.redisClient)
		txRepo.tema = NewTemaPostgreSQL(tx, r.redisClient)
		txRepo.articulo = NewArticuloPostgreSQL(tx, r.redisClient)
		txRepo.usuario = NewUsuarioPostgreSQL(tx, r.redisClient)
		txRepo.tabla = NewTablaPostgreSQL(tx, r.redisClient)
		txRepo.stats = NewStatsPostgreSQL(tx)

		return fn(txRepo)
	})
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{config: config}
}

// Initialize initializes all repositories and connections
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("Redis connection failed: %w", err)
		}
	}

	rm.repo = NewPostgreSQLRepository(rm.config)

	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}
