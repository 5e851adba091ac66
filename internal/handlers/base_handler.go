package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

// BaseHandler carries the shared logging and error-mapping helpers every
// resource handler embeds.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest and LogError prefer the request-scoped logger so every line
// carries the request_id attached by ContextLogger.

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "method", c.Request.Method, "path", c.Request.URL.Path)
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// HandleServiceError translates the service error taxonomy into HTTP. The
// response body carries only the user-facing message; the cause stays in the
// logs.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch services.KindOf(err) {
	case services.ErrorValidation, services.ErrorForeignKey:
		status = http.StatusBadRequest
	case services.ErrorNotFound:
		status = http.StatusNotFound
	case services.ErrorConflict:
		status = http.StatusConflict
	case services.ErrorUnauthorized:
		status = http.StatusUnauthorized
	case services.ErrorPermission:
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		h.LogError(c, err, "request failed")
	}

	c.JSON(status, models.ErrorResponse{Error: services.UserMessage(err)})
}

// ParseIDParam reads a positive integer path parameter, answering 400 itself
// when the value is not one.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "ID inválido"})
		return 0, false
	}
	return uint(id), true
}
