package services

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/validator"
)

type usuarioService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	publisher  events.EventPublisher
	bcryptCost int
}

func NewUsuarioService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, bcryptCost int) UsuarioService {
	return &usuarioService{
		repo:       repo,
		logger:     logger,
		validator:  v,
		publisher:  publisher,
		bcryptCost: bcryptCost,
	}
}

func (s *usuarioService) List(ctx context.Context) ([]models.Usuario, error) {
	usuarios, err := s.repo.Usuario().List(ctx)
	if err != nil {
		return nil, FromRepositoryError(err, "Usuario no encontrado")
	}
	return usuarios, nil
}

func (s *usuarioService) Create(ctx context.Context, req *models.RegisterRequest) (*models.Usuario, error) {
	usuario, err := s.create(ctx, req, req.Rol)
	if err != nil {
		return nil, err
	}

	s.logger.Info("usuario created", "usuario_id", usuario.ID, "rol", usuario.Rol)
	return usuario, nil
}

func (s *usuarioService) Update(ctx context.Context, id uint, req *models.UsuarioUpdateRequest) (*models.Usuario, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, NewValidationError("Faltan campos obligatorios")
	}

	usuario := &models.Usuario{
		ID:     id,
		Nombre: req.Nombre,
		Email:  strings.ToLower(req.Email),
		Rol:    models.UserRole(req.Rol),
	}
	if err := s.repo.Usuario().Update(ctx, usuario); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, NewConflictError("El email ya está en uso")
		}
		return nil, FromRepositoryError(err, "Usuario no encontrado")
	}

	updated, err := s.repo.Usuario().GetByID(ctx, id)
	if err != nil {
		return nil, FromRepositoryError(err, "Usuario no encontrado")
	}
	return updated, nil
}

func (s *usuarioService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Usuario().Delete(ctx, id); err != nil {
		return FromRepositoryError(err, "Usuario no encontrado")
	}
	return nil
}

func (s *usuarioService) EmailExists(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, NewValidationError("El email es obligatorio")
	}
	if err := s.validator.Var(email, "email"); err != nil {
		return false, NewValidationError("El email no es válido")
	}

	exists, err := s.repo.Usuario().EmailExists(ctx, strings.ToLower(email))
	if err != nil {
		return false, FromRepositoryError(err, "Usuario no encontrado")
	}
	return exists, nil
}

func (s *usuarioService) AnyExist(ctx context.Context) (bool, error) {
	count, err := s.repo.Usuario().Count(ctx)
	if err != nil {
		return false, FromRepositoryError(err, "Usuario no encontrado")
	}
	return count > 0, nil
}

// CreateFirst bootstraps the installation: allowed only while the user table
// is empty, and the account is always an administrador. The zero-users check
// and the insert do not share a transaction; the unique email index is the
// backstop if two bootstrap calls race.
func (s *usuarioService) CreateFirst(ctx context.Context, req *models.RegisterRequest) (*models.Usuario, error) {
	exists, err := s.AnyExist(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewPermissionError("Ya existe un usuario registrado")
	}

	usuario, err := s.create(ctx, req, string(models.RolAdministrador))
	if err != nil {
		return nil, err
	}

	s.logger.Info("first usuario bootstrapped", "usuario_id", usuario.ID)
	return usuario, nil
}

func (s *usuarioService) create(ctx context.Context, req *models.RegisterRequest, rol string) (*models.Usuario, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, NewValidationError("Faltan campos obligatorios")
	}
	if rol == "" {
		rol = string(models.RolEstudiante)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, NewInternalError("Error interno del servidor", err)
	}

	usuario := &models.Usuario{
		Nombre:   req.Nombre,
		Email:    strings.ToLower(req.Email),
		Password: string(hash),
		Rol:      models.UserRole(rol),
	}
	if err := s.repo.Usuario().Create(ctx, usuario); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, NewConflictError("El correo ya está registrado.")
		}
		return nil, FromRepositoryError(err, "Usuario no encontrado")
	}

	return usuario, nil
}
