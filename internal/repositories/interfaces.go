package repositories

import (
	"context"
	"time"

	"github.com/colibri-edu/content-service/internal/models"
)

type GradoRepository interface {
	Create(ctx context.Context, grado *models.Grado) error
	GetByID(ctx context.Context, id uint) (*models.Grado, error)
	List(ctx context.Context) ([]models.Grado, error)
	Update(ctx context.Context, grado *models.Grado) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type AreaRepository interface {
	Create(ctx context.Context, area *models.Area) error
	GetByID(ctx context.Context, id uint) (*models.Area, error)
	List(ctx context.Context) ([]models.Area, error)
	ListByGrado(ctx context.Context, gradoID uint) ([]models.Area, error)
	Update(ctx context.Context, area *models.Area) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type TemaRepository interface {
	Create(ctx context.Context, tema *models.Tema) error
	GetByID(ctx context.Context, id uint) (*models.Tema, error)
	List(ctx context.Context) ([]models.Tema, error)
	ListByArea(ctx context.Context, areaID uint) ([]models.Tema, error)
	Update(ctx context.Context, tema *models.Tema) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// ArticuloFilter narrows article listings; zero values mean no filter.
type ArticuloFilter struct {
	GradoID uint
	AreaID  uint
	TemaID  uint
}

type ArticuloRepository interface {
	Create(ctx context.Context, articulo *models.Articulo) error
	GetByID(ctx context.Context, id uint) (*models.Articulo, error)
	List(ctx context.Context, filter ArticuloFilter) ([]models.Articulo, error)
	Update(ctx context.Context, articulo *models.Articulo) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	GetByID(ctx context.Context, id uint) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.Usuario, error)
	Update(ctx context.Context, usuario *models.Usuario) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// TablaRepository is the generic row store behind the import surface. Every
// implementation must validate table and column names against internal/schema
// before building SQL; identifiers never come from the caller verbatim.
type TablaRepository interface {
	ListRows(ctx context.Context, table string) ([]map[string]any, error)
	InsertRow(ctx context.Context, table string, data map[string]any) (map[string]any, error)
	UpdateRow(ctx context.Context, table string, id uint, data map[string]any) (map[string]any, error)
	RowExists(ctx context.Context, table string, id uint) (bool, error)
	// ResetSequence realigns the id sequence with MAX(id). Restore needs
	// this after replaying rows with explicit ids.
	ResetSequence(ctx context.Context, table string) error
}

type StatsRepository interface {
	Counts(ctx context.Context) (*models.StatsResponse, error)
	Now(ctx context.Context) (time.Time, error)
}
