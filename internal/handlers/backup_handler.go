package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

type BackupHandler struct {
	BaseHandler
	service services.BackupService
}

func NewBackupHandler(service services.BackupService, logger utils.Logger) *BackupHandler {
	return &BackupHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Backup returns the hierarchy snapshot and persists the artifact Restore
// replays.
func (h *BackupHandler) Backup(c *gin.Context) {
	payload, err := h.service.Backup(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Restore replays the persisted snapshot inside one transaction.
func (h *BackupHandler) Restore(c *gin.Context) {
	if err := h.service.Restore(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Base de datos restaurada con éxito"})
}

// Clear empties the hierarchy tables inside one transaction.
func (h *BackupHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Base de datos vaciada con éxito"})
}
