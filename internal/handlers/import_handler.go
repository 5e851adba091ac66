package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/schema"
	"github.com/colibri-edu/content-service/internal/services"
	"github.com/colibri-edu/content-service/internal/utils"
)

// maxImportFileSize caps uploaded import sources.
const maxImportFileSize = 20 << 20 // 20 MiB

type ImportHandler struct {
	BaseHandler
	service services.ImportService
}

func NewImportHandler(service services.ImportService, logger utils.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetTableColumns returns the importable columns of an allow-listed table.
// Unknown tables answer 404.
func (h *ImportHandler) GetTableColumns(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "La tabla es obligatoria"})
		return
	}

	columns, err := h.service.TableColumns(table)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": table, "columns": columns})
}

func (h *ImportHandler) GetExistingData(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "La tabla es obligatoria"})
		return
	}

	rows, err := h.service.ExistingData(c.Request.Context(), table)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ValidateForeignKey reports whether the referenced row exists. usuarios is
// reachable here even though it is not importable.
func (h *ImportHandler) ValidateForeignKey(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "La tabla es obligatoria"})
		return
	}

	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "ID inválido"})
		return
	}

	exists, err := h.service.ValidateForeignKey(c.Request.Context(), table, uint(id))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": exists})
}

func (h *ImportHandler) InsertData(c *gin.Context) {
	var req models.InsertDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Faltan campos obligatorios"})
		return
	}

	row, err := h.service.InsertData(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *ImportHandler) UpdateData(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "La tabla es obligatoria"})
		return
	}

	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "ID inválido"})
		return
	}

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Faltan campos obligatorios"})
		return
	}

	row, err := h.service.UpdateData(c.Request.Context(), table, uint(id), data)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// ImportData runs the reconciliation pipeline over caller-supplied records and
// returns the per-record report.
func (h *ImportHandler) ImportData(c *gin.Context) {
	var req models.ImportDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Faltan campos obligatorios"})
		return
	}

	report, err := h.service.ImportData(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.LogRequest(c, "import completed",
		"table", report.Table,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed)
	c.JSON(http.StatusOK, report)
}

// ImportFile parses an uploaded .xlsx or .json source and feeds it through
// the same reconciliation pipeline. The form carries the file plus tableName
// and a JSON-encoded mappings object.
func (h *ImportHandler) ImportFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportFileSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "El archivo es obligatorio"})
		return
	}

	tableName := c.PostForm("tableName")
	if tableName == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "La tabla es obligatoria"})
		return
	}

	var mappings map[string]string
	if raw := c.PostForm("mappings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mappings); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Los mapeos no son válidos"})
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No se pudo leer el archivo"})
		return
	}
	defer file.Close()

	fields, rows, err := h.service.ParseSource(fileHeader.Filename, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if len(mappings) == 0 {
		mappings = identityMappings(tableName, fields)
	}

	report, err := h.service.ImportData(c.Request.Context(), &models.ImportDataRequest{
		TableName: tableName,
		Mappings:  mappings,
		Data:      rows,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields, "report": report})
}

// identityMappings maps source fields to the columns of the same name,
// dropping anything that is not writable. A previously exported file carries
// id and timestamps; those must not abort the run.
func identityMappings(tableName string, fields []string) map[string]string {
	tbl, ok := schema.Lookup(tableName)

	mappings := make(map[string]string, len(fields))
	for _, field := range fields {
		if ok && !tbl.HasColumn(field) {
			continue
		}
		mappings[field] = field
	}
	return mappings
}
