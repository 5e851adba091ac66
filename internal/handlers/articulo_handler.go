package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

type ArticuloHandler struct {
	BaseHandler
	service services.ArticuloService
}

func NewArticuloHandler(service services.ArticuloService, logger utils.Logger) *ArticuloHandler {
	return &ArticuloHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns articles, optionally filtered by grado_id/area_id/tema_id
// query parameters.
func (h *ArticuloHandler) List(c *gin.Context) {
	filter := repositories.ArticuloFilter{
		GradoID: queryUint(c, "grado_id"),
		AreaID:  queryUint(c, "area_id"),
		TemaID:  queryUint(c, "tema_id"),
	}

	articulos, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, articulos)
}

func (h *ArticuloHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	articulo, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, articulo)
}

func (h *ArticuloHandler) Create(c *gin.Context) {
	var req models.ArticuloCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "El título es obligatorio"})
		return
	}

	// The author defaults to the authenticated caller.
	if req.UsuarioID == 0 {
		if userID, ok := CurrentUserID(c); ok {
			req.UsuarioID = userID
		}
	}

	articulo, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.LogRequest(c, "articulo created", "articulo_id", articulo.ID)
	c.JSON(http.StatusCreated, articulo)
}

func (h *ArticuloHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ArticuloUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "El título es obligatorio"})
		return
	}

	articulo, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, articulo)
}

func (h *ArticuloHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artículo eliminado"})
}

func queryUint(c *gin.Context, name string) uint {
	if raw := c.Query(name); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return uint(n)
		}
	}
	return 0
}
