package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

func TestBaseHandler_HandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBaseHandler(utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil))))

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"Validation", services.NewValidationError("El nombre es obligatorio"), http.StatusBadRequest, "El nombre es obligatorio"},
		{
			// A delete blocked by dependent rows maps to 400, same as the
			// other caller-fixable failures.
			"ForeignKey",
			services.FromRepositoryError(fmt.Errorf("failed to delete grado 3: %w", repositories.ErrForeignKey), "Grado no encontrado"),
			http.StatusBadRequest,
			"Violación de clave foránea",
		},
		{"NotFound", services.NewNotFoundError("Grado no encontrado"), http.StatusNotFound, "Grado no encontrado"},
		{"Conflict", services.NewConflictError("Registro duplicado"), http.StatusConflict, "Registro duplicado"},
		{"Unauthorized", services.NewUnauthorizedError("Credenciales incorrectas."), http.StatusUnauthorized, "Credenciales incorrectas."},
		{"Permission", services.NewPermissionError("No tiene permiso para realizar esta acción"), http.StatusForbidden, "No tiene permiso para realizar esta acción"},
		{"Internal", services.NewInternalError("Error interno del servidor", fmt.Errorf("conexión perdida")), http.StatusInternalServerError, "Error interno del servidor"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodDelete, "/api/grados/3", nil)

			handler.HandleServiceError(c, tc.err)

			if w.Code != tc.status {
				t.Fatalf("Expected %d, got %d", tc.status, w.Code)
			}
			var resp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Invalid error body: %v", err)
			}
			if resp.Error != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, resp.Error)
			}
		})
	}
}

func TestBaseHandler_ParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewBaseHandler(utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil))))

	cases := []struct {
		raw string
		ok  bool
	}{
		{"7", true},
		{"0", false},
		{"-1", false},
		{"abc", false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tc.raw}}

			id, ok := handler.ParseIDParam(c, "id")
			if ok != tc.ok {
				t.Fatalf("Expected ok=%v, got %v", tc.ok, ok)
			}
			if tc.ok && id != 7 {
				t.Errorf("Expected id 7, got %d", id)
			}
			if !tc.ok && w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
		})
	}
}
