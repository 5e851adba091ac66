package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/auth"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/utils"
)

// AuthMiddleware verifies bearer tokens and gates routes by role.
type AuthMiddleware struct {
	tokens *auth.TokenManager
	logger utils.Logger
}

func NewAuthMiddleware(tokens *auth.TokenManager, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// RequireAuth extracts and verifies the Authorization bearer token, loading
// the caller's identity into the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Acceso denegado"})
			return
		}

		claims, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.logger.Warn("token rejected", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Token inválido"})
			return
		}

		c.Set("user_id", claims.ID)
		c.Set("user_email", claims.Email)
		c.Set("user_rol", claims.Rol)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		rol := c.GetString("user_rol")
		for _, role := range roles {
			if rol == string(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "No tiene permiso para realizar esta acción"})
	}
}

// CurrentUserID returns the authenticated caller's id, when present.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
