package services

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/colibri-edu/content-service/internal/auth"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/validator"
)

type authService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	tokens     *auth.TokenManager
	bcryptCost int
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, tokens *auth.TokenManager, bcryptCost int) AuthService {
	return &authService{
		repo:       repo,
		logger:     logger,
		validator:  v,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates an account. Self-registration never grants administrador;
// the role field is only honored on the admin-gated user endpoints.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Usuario, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, NewValidationError("Faltan campos obligatorios")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, NewInternalError("Error interno del servidor", err)
	}

	usuario := &models.Usuario{
		Nombre:   req.Nombre,
		Email:    strings.ToLower(req.Email),
		Password: string(hash),
		Rol:      models.RolEstudiante,
	}
	if err := s.repo.Usuario().Create(ctx, usuario); err != nil {
		if repositories.IsDuplicate(err) {
			return nil, NewConflictError("El correo ya está registrado.")
		}
		return nil, FromRepositoryError(err, "Usuario no encontrado")
	}

	s.logger.Info("usuario registered", "usuario_id", usuario.ID)
	return usuario, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same message so the endpoint cannot be used to probe
// accounts.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, NewValidationError("Faltan campos obligatorios")
	}

	usuario, err := s.repo.Usuario().GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, NewUnauthorizedError("Credenciales incorrectas.")
		}
		return nil, FromRepositoryError(err, "Usuario no encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("Credenciales incorrectas.")
	}

	token, err := s.tokens.Issue(usuario.ID, usuario.Email, string(usuario.Rol))
	if err != nil {
		return nil, NewInternalError("Error interno del servidor", err)
	}

	s.logger.Info("usuario logged in", "usuario_id", usuario.ID)
	return &models.LoginResponse{Token: token, Usuario: usuario}, nil
}

func (s *authService) Profile(ctx context.Context, userID uint) (*models.Usuario, error) {
	usuario, err := s.repo.Usuario().GetByID(ctx, userID)
	if err != nil {
		return nil, FromRepositoryError(err, "Usuario no encontrado")
	}
	return usuario, nil
}
