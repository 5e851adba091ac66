package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

type UsuarioHandler struct {
	BaseHandler
	service services.UsuarioService
}

func NewUsuarioHandler(service services.UsuarioService, logger utils.Logger) *UsuarioHandler {
	return &UsuarioHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns every account. Password hashes never serialize (json:"-").
func (h *UsuarioHandler) List(c *gin.Context) {
	usuarios, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

func (h *UsuarioHandler) Create(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Faltan campos obligatorios"})
		return
	}

	usuario, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.LogRequest(c, "usuario created", "usuario_id", usuario.ID)
	c.JSON(http.StatusCreated, usuario)
}

func (h *UsuarioHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UsuarioUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Faltan campos obligatorios"})
		return
	}

	usuario, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

func (h *UsuarioHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}

// CheckEmail is the public registration-form probe.
func (h *UsuarioHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "El email es obligatorio"})
		return
	}

	exists, err := h.service.EmailExists(c.Request.Context(), email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// Exist reports whether any account exists; the frontend uses it to decide
// between the login page and the bootstrap form.
func (h *UsuarioHandler) Exist(c *gin.Context) {
	exists, err := h.service.AnyExist(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"existen": exists})
}

// CreateFirst bootstraps the installation's first administrator.
func (h *UsuarioHandler) CreateFirst(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Faltan campos obligatorios"})
		return
	}

	usuario, err := h.service.CreateFirst(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.LogRequest(c, "first usuario created", "usuario_id", usuario.ID)
	c.JSON(http.StatusCreated, usuario)
}
