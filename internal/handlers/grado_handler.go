package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

type GradoHandler struct {
	BaseHandler
	service services.GradoService
}

func NewGradoHandler(service services.GradoService, logger utils.Logger) *GradoHandler {
	return &GradoHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns every grado ordered by id.
func (h *GradoHandler) List(c *gin.Context) {
	grados, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, grados)
}

func (h *GradoHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	grado, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, grado)
}

func (h *GradoHandler) Create(c *gin.Context) {
	var req models.GradoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "El nombre es obligatorio"})
		return
	}

	grado, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.LogRequest(c, "grado created", "grado_id", grado.ID)
	c.JSON(http.StatusCreated, grado)
}

func (h *GradoHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.GradoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "El nombre es obligatorio"})
		return
	}

	grado, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, grado)
}

func (h *GradoHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Grado eliminado"})
}

// Duplicate clones the grado, appending the copy marker to its name.
func (h *GradoHandler) Duplicate(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	copy, err := h.service.Duplicate(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, copy)
}
