package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/colibri-edu/content-service/internal/auth"
	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/validator"
)

func newAuthFixture() (*MockRepository, *auth.TokenManager, AuthService) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := NewMockRepository()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	service := NewAuthService(repo, logger, validator.New(), tokens, bcrypt.MinCost)
	return repo, tokens, service
}

func TestAuthService_Register(t *testing.T) {
	repo, _, service := newAuthFixture()
	ctx := context.Background()

	usuario, err := service.Register(ctx, &models.RegisterRequest{
		Nombre:   "Ana",
		Email:    "Ana@Ejemplo.com",
		Password: "secreta123",
		Rol:      "administrador",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Self-registration never grants administrador, whatever the body says.
	if usuario.Rol != models.RolEstudiante {
		t.Errorf("Expected rol estudiante, got %s", usuario.Rol)
	}
	if usuario.Email != "ana@ejemplo.com" {
		t.Errorf("Expected lowercased email, got %s", usuario.Email)
	}

	stored, err := repo.Usuario().GetByEmail(ctx, "ana@ejemplo.com")
	if err != nil {
		t.Fatalf("Stored usuario not found: %v", err)
	}
	if stored.Password == "secreta123" {
		t.Error("Password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secreta123")); err != nil {
		t.Errorf("Stored password is not a valid bcrypt hash: %v", err)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	_, _, service := newAuthFixture()
	ctx := context.Background()

	req := &models.RegisterRequest{Nombre: "Ana", Email: "ana@ejemplo.com", Password: "secreta123"}
	if _, err := service.Register(ctx, req); err != nil {
		t.Fatalf("First register failed: %v", err)
	}

	_, err := service.Register(ctx, req)
	if err == nil {
		t.Fatal("Expected error for duplicate email")
	}
	if KindOf(err) != ErrorConflict {
		t.Errorf("Expected conflict error, got kind %d", KindOf(err))
	}
	if UserMessage(err) != "El correo ya está registrado." {
		t.Errorf("Unexpected message: %q", UserMessage(err))
	}
}

func TestAuthService_Login(t *testing.T) {
	_, tokens, service := newAuthFixture()
	ctx := context.Background()

	if _, err := service.Register(ctx, &models.RegisterRequest{
		Nombre:   "Ana",
		Email:    "ana@ejemplo.com",
		Password: "secreta123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		resp, err := service.Login(ctx, &models.LoginRequest{Email: "ana@ejemplo.com", Password: "secreta123"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("Expected a token")
		}

		claims, err := tokens.Verify(resp.Token)
		if err != nil {
			t.Fatalf("Issued token does not verify: %v", err)
		}
		if claims.Email != "ana@ejemplo.com" || claims.Rol != string(models.RolEstudiante) {
			t.Errorf("Unexpected claims: %+v", claims)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.Login(ctx, &models.LoginRequest{Email: "ana@ejemplo.com", Password: "incorrecta"})
		if err == nil {
			t.Fatal("Expected error for wrong password")
		}
		if KindOf(err) != ErrorUnauthorized {
			t.Errorf("Expected unauthorized error, got kind %d", KindOf(err))
		}
		if UserMessage(err) != "Credenciales incorrectas." {
			t.Errorf("Unexpected message: %q", UserMessage(err))
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := service.Login(ctx, &models.LoginRequest{Email: "nadie@ejemplo.com", Password: "secreta123"})
		if err == nil {
			t.Fatal("Expected error for unknown email")
		}
		// Same message as a wrong password so the endpoint cannot probe
		// which accounts exist.
		if KindOf(err) != ErrorUnauthorized || UserMessage(err) != "Credenciales incorrectas." {
			t.Errorf("Unexpected error: %v", err)
		}
	})
}

func TestUsuarioService_EmailExists(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := NewUsuarioService(repo, logger, validator.New(), publisher, bcrypt.MinCost)
	ctx := context.Background()

	if _, err := service.Create(ctx, &models.RegisterRequest{
		Nombre:   "Ana",
		Email:    "ana@ejemplo.com",
		Password: "secreta123",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err := service.EmailExists(ctx, "Ana@Ejemplo.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected registered email to exist, case-insensitively")
	}

	exists, err = service.EmailExists(ctx, "nadie@ejemplo.com")
	if err != nil {
		t.Fatalf("EmailExists failed: %v", err)
	}
	if exists {
		t.Error("Expected unregistered email to not exist")
	}

	if _, err := service.EmailExists(ctx, ""); err == nil || KindOf(err) != ErrorValidation {
		t.Errorf("Expected validation error for empty email, got %v", err)
	}
	if _, err := service.EmailExists(ctx, "no-es-un-correo"); err == nil || KindOf(err) != ErrorValidation {
		t.Errorf("Expected validation error for malformed email, got %v", err)
	}
}

func TestUsuarioService_CreateFirst(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := NewUsuarioService(repo, logger, validator.New(), publisher, bcrypt.MinCost)
	ctx := context.Background()

	usuario, err := service.CreateFirst(ctx, &models.RegisterRequest{
		Nombre:   "Admin",
		Email:    "admin@ejemplo.com",
		Password: "secreta123",
		Rol:      "estudiante",
	})
	if err != nil {
		t.Fatalf("CreateFirst failed: %v", err)
	}
	if usuario.Rol != models.RolAdministrador {
		t.Errorf("Bootstrap account must be administrador, got %s", usuario.Rol)
	}

	_, err = service.CreateFirst(ctx, &models.RegisterRequest{
		Nombre:   "Otro",
		Email:    "otro@ejemplo.com",
		Password: "secreta123",
	})
	if err == nil {
		t.Fatal("Expected error once a usuario exists")
	}
	if KindOf(err) != ErrorPermission {
		t.Errorf("Expected permission error, got kind %d", KindOf(err))
	}
	if UserMessage(err) != "Ya existe un usuario registrado" {
		t.Errorf("Unexpected message: %q", UserMessage(err))
	}
}
