package services

import (
	"context"
	"io"
	"time"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/schema"
)

type GradoService interface {
	List(ctx context.Context) ([]models.Grado, error)
	Get(ctx context.Context, id uint) (*models.Grado, error)
	Create(ctx context.Context, req *models.GradoCreateRequest) (*models.Grado, error)
	Update(ctx context.Context, id uint, req *models.GradoCreateRequest) (*models.Grado, error)
	Delete(ctx context.Context, id uint) error
	Duplicate(ctx context.Context, id uint) (*models.Grado, error)
}

type AreaService interface {
	List(ctx context.Context) ([]models.Area, error)
	Get(ctx context.Context, id uint) (*models.Area, error)
	Create(ctx context.Context, req *models.AreaCreateRequest) (*models.Area, error)
	Update(ctx context.Context, id uint, req *models.AreaCreateRequest) (*models.Area, error)
	Delete(ctx context.Context, id uint) error
	Duplicate(ctx context.Context, id uint) (*models.Area, error)
}

type TemaService interface {
	List(ctx context.Context) ([]models.Tema, error)
	Get(ctx context.Context, id uint) (*models.Tema, error)
	Create(ctx context.Context, req *models.TemaCreateRequest) (*models.Tema, error)
	Update(ctx context.Context, id uint, req *models.TemaCreateRequest) (*models.Tema, error)
	Delete(ctx context.Context, id uint) error
	Duplicate(ctx context.Context, id uint) (*models.Tema, error)
}

type ArticuloService interface {
	List(ctx context.Context, filter repositories.ArticuloFilter) ([]models.Articulo, error)
	Get(ctx context.Context, id uint) (*models.Articulo, error)
	Create(ctx context.Context, req *models.ArticuloCreateRequest) (*models.Articulo, error)
	Update(ctx context.Context, id uint, req *models.ArticuloUpdateRequest) (*models.Articulo, error)
	Delete(ctx context.Context, id uint) error
}

type UsuarioService interface {
	List(ctx context.Context) ([]models.Usuario, error)
	Create(ctx context.Context, req *models.RegisterRequest) (*models.Usuario, error)
	Update(ctx context.Context, id uint, req *models.UsuarioUpdateRequest) (*models.Usuario, error)
	Delete(ctx context.Context, id uint) error
	EmailExists(ctx context.Context, email string) (bool, error)
	AnyExist(ctx context.Context) (bool, error)
	// CreateFirst is the bootstrap path: it only succeeds while the user
	// table is empty, and always grants administrador.
	CreateFirst(ctx context.Context, req *models.RegisterRequest) (*models.Usuario, error)
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Usuario, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Profile(ctx context.Context, userID uint) (*models.Usuario, error)
}

type BackupService interface {
	// Backup snapshots the hierarchy tables and persists the artifact.
	Backup(ctx context.Context) (*models.BackupPayload, error)
	// Restore replays the persisted artifact inside one transaction.
	Restore(ctx context.Context) error
	// Clear empties the hierarchy tables inside one transaction.
	Clear(ctx context.Context) error
}

type ImportService interface {
	TableColumns(table string) ([]schema.Column, error)
	ExistingData(ctx context.Context, table string) ([]map[string]any, error)
	ValidateForeignKey(ctx context.Context, table string, id uint) (bool, error)
	InsertData(ctx context.Context, req *models.InsertDataRequest) (map[string]any, error)
	UpdateData(ctx context.Context, table string, id uint, data map[string]any) (map[string]any, error)
	ImportData(ctx context.Context, req *models.ImportDataRequest) (*models.ImportReport, error)
	// ParseSource reads an .xlsx or .json upload into field names and row maps.
	ParseSource(filename string, r io.Reader) ([]string, []map[string]any, error)
}

type StatsService interface {
	Stats(ctx context.Context) (*models.StatsResponse, error)
	Time(ctx context.Context) (time.Time, error)
}

// ServiceManager aggregates every service with lifecycle management.
type ServiceManager interface {
	Grado() GradoService
	Area() AreaService
	Tema() TemaService
	Articulo() ArticuloService
	Usuario() UsuarioService
	Auth() AuthService
	Backup() BackupService
	Import() ImportService
	Stats() StatsService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
