package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

type AreaHandler struct {
	BaseHandler
	service services.AreaService
}

func NewAreaHandler(service services.AreaService, logger utils.Logger) *AreaHandler {
	return &AreaHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *AreaHandler) List(c *gin.Context) {
	areas, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, areas)
}

func (h *AreaHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	area, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, area)
}

func (h *AreaHandler) Create(c *gin.Context) {
	var req models.AreaCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "El nombre es obligatorio"})
		return
	}

	area, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.LogRequest(c, "area created", "area_id", area.ID)
	c.JSON(http.StatusCreated, area)
}

func (h *AreaHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.AreaCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "El nombre es obligatorio"})
		return
	}

	area, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, area)
}

func (h *AreaHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Área eliminada"})
}

func (h *AreaHandler) Duplicate(c *gin.Context) {
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
