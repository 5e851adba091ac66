package repositories

import "context"

// Repository aggregates every per-entity repository.
type Repository interface {
	Grado() GradoRepository
	Area() AreaRepository
	Tema() TemaRepository
	Articulo() ArticuloRepository
	Usuario() UsuarioRepository

	// Generic table surface (import pipeline)
	Tabla() TablaRepository

	// Dashboard / probes
	Stats() StatsRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
