package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/auth"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/utils"
)

func setupAuthTestRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	middleware := NewAuthMiddleware(tokens, logger)

	router := gin.New()
	router.GET("/protegido", middleware.RequireAuth(), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	router.GET("/admin", middleware.RequireAuth(), middleware.RequireRole(models.RolAdministrador), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := setupAuthTestRouter(tokens)

	t.Run("MissingHeader", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
		var resp models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid error body: %v", err)
		}
		if resp.Error != "Acceso denegado" {
			t.Errorf("Unexpected message: %q", resp.Error)
		}
	})

	t.Run("MalformedToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
		req.Header.Set("Authorization", "Bearer no-es-un-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
		var resp models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid error body: %v", err)
		}
		if resp.Error != "Token inválido" {
			t.Errorf("Unexpected message: %q", resp.Error)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		otherTokens := auth.NewTokenManager("otro-secreto", time.Hour)
		token, err := otherTokens.Issue(1, "ana@ejemplo.com", string(models.RolEstudiante))
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.Issue(7, "ana@ejemplo.com", string(models.RolEstudiante))
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid body: %v", err)
		}
		if resp["user_id"] != float64(7) {
			t.Errorf("Expected user_id 7, got %v", resp["user_id"])
		}
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := setupAuthTestRouter(tokens)

	t.Run("EstudianteRejected", func(t *testing.T) {
		token, err := tokens.Issue(1, "ana@ejemplo.com", string(models.RolEstudiante))
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("Expected 403, got %d", w.Code)
		}
		var resp models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid error body: %v", err)
		}
		if resp.Error != "No tiene permiso para realizar esta acción" {
			t.Errorf("Unexpected message: %q", resp.Error)
		}
	})

	t.Run("AdministradorAllowed", func(t *testing.T) {
		token, err := tokens.Issue(2, "admin@ejemplo.com", string(models.RolAdministrador))
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
	})
}
