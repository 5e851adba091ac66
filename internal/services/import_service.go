package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/colibri-edu/content-service/internal/events"
	"github.com/colibri-edu/content-service/internal/models"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/schema"
	"github.com/colibri-edu/content-service/internal/validator"
)

type importService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewImportService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ImportService {
	return &importService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *importService) TableColumns(table string) ([]schema.Column, error) {
	tbl, ok := schema.Lookup(table)
	if !ok {
		return nil, NewNotFoundError("Tabla no encontrada")
	}
	return tbl.Columns, nil
}

func (s *importService) ExistingData(ctx context.Context, table string) ([]map[string]any, error) {
	rows, err := s.repo.Tabla().ListRows(ctx, table)
	if err != nil {
		return nil, FromRepositoryError(err, "Tabla no encontrada")
	}
	return rows, nil
}

func (s *importService) ValidateForeignKey(ctx context.Context, table string, id uint) (bool, error) {
	exists, err := s.repo.Tabla().RowExists(ctx, table, id)
	if err != nil {
		return false, FromRepositoryError(err, "Tabla no encontrada")
	}
	return exists, nil
}

func (s *importService) InsertData(ctx context.Context, req *models.InsertDataRequest) (map[string]any, error) {
	if req.TableName == "" || len(req.Data) == 0 {
		return nil, NewValidationError("Faltan campos obligatorios")
	}

	row, err := s.repo.Tabla().InsertRow(ctx, req.TableName, req.Data)
	if err != nil {
		return nil, FromRepositoryError(err, "Tabla no encontrada")
	}
	return row, nil
}

func (s *importService) UpdateData(ctx context.Context, table string, id uint, data map[string]any) (map[string]any, error) {
	if len(data) == 0 {
		return nil, NewValidationError("Faltan campos obligatorios")
	}

	row, err := s.repo.Tabla().UpdateRow(ctx, table, id, data)
	if err != nil {
		return nil, FromRepositoryError(err, "Registro no encontrado")
	}
	return row, nil
}

// ImportData reconciles caller records against the current table contents.
// Existing rows are fetched once up front; each record is then mapped through
// the field mappings and inserted, updated, or skipped by its natural key.
// Per-record failures are reported without aborting the run, so a second
// identical run yields only skips.
func (s *importService) ImportData(ctx context.Context, req *models.ImportDataRequest) (*models.ImportReport, error) {
	tbl, ok := schema.Lookup(req.TableName)
	if !ok {
		return nil, NewNotFoundError("Tabla no encontrada")
	}
	if len(req.Mappings) == 0 {
		return nil, NewValidationError("Faltan los mapeos de columnas")
	}
	for _, destColumn := range req.Mappings {
		if !tbl.HasColumn(destColumn) {
			return nil, NewValidationError("Columna no permitida")
		}
	}

	existing, err := s.repo.Tabla().ListRows(ctx, req.TableName)
	if err != nil {
		return nil, FromRepositoryError(err, "Tabla no encontrada")
	}

	// Index the snapshot by natural key. Rows inserted or updated during the
	// run replace their snapshot entry, so duplicated keys inside one batch
	// reconcile against the batch's own writes.
	byKey := make(map[string]map[string]any, len(existing))
	for _, row := range existing {
		byKey[canonical(row[tbl.NaturalKey])] = row
	}

	report := &models.ImportReport{
		Table:   tbl.Name,
		Total:   len(req.Data),
		Records: make([]models.ImportRecordResult, 0, len(req.Data)),
	}

	for i, record := range req.Data {
		result := models.ImportRecordResult{
			Index:    i,
			Progress: float64(i+1) / float64(len(req.Data)),
		}

		mapped := make(map[string]any, len(req.Mappings))
		for sourceField, destColumn := range req.Mappings {
			if value, ok := record[sourceField]; ok {
				mapped[destColumn] = value
			}
		}

		key := canonical(mapped[tbl.NaturalKey])
		result.Key = key
		if key == "" {
			result.Action = models.ImportFailed
			result.Error = "el registro no tiene clave natural"
			report.Failed++
			report.Records = append(report.Records, result)
			continue
		}

		if existingRow, found := byKey[key]; found {
			if mappedEqual(existingRow, mapped) {
				result.Action = models.ImportSkipped
				report.Skipped++
			} else {
				id, ok := toUint(existingRow["id"])
				if !ok {
					result.Action = models.ImportFailed
					result.Error = "registro existente sin id"
					report.Failed++
					report.Records = append(report.Records, result)
					continue
				}

				updated, err := s.repo.Tabla().UpdateRow(ctx, tbl.Name, id, mapped)
				if err != nil {
					result.Action = models.ImportFailed
					result.Error = UserMessage(FromRepositoryError(err, "Registro no encontrado"))
					report.Failed++
				} else {
					result.Action = models.ImportUpdated
					report.Updated++
					byKey[key] = updated
				}
			}
		} else {
			inserted, err := s.repo.Tabla().InsertRow(ctx, tbl.Name, mapped)
			if err != nil {
				result.Action = models.ImportFailed
				result.Error = UserMessage(FromRepositoryError(err, "Registro no encontrado"))
				report.Failed++
			} else {
				result.Action = models.ImportInserted
				report.Inserted++
				byKey[key] = inserted
			}
		}

		report.Records = append(report.Records, result)
	}

	s.publishReport(ctx, report)
	s.logger.Info("import completed",
		"table", report.Table,
		"total", report.Total,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed)

	return report, nil
}

// ParseSource turns an uploaded .xlsx or .json file into source field names
// and row maps for the reconciliation path.
func (s *importService) ParseSource(filename string, r io.Reader) ([]string, []map[string]any, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return parseJSONSource(r)
	case ".xlsx":
		return parseExcelSource(r)
	default:
		return nil, nil, NewValidationError("Formato de archivo no soportado")
	}
}

func parseJSONSource(r io.Reader) ([]string, []map[string]any, error) {
	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, nil, NewValidationError("El archivo JSON no es válido")
	}
	if len(rows) == 0 {
		return nil, nil, NewValidationError("El archivo no contiene registros")
	}

	// Field set = union of keys across rows, first-seen order.
	var fields []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				fields = append(fields, key)
			}
		}
	}

	return fields, rows, nil
}

func parseExcelSource(r io.Reader) ([]string, []map[string]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, NewValidationError("El archivo Excel no es válido")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, NewValidationError("El archivo no contiene hojas")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		return nil, nil, NewValidationError("El archivo no contiene registros")
	}

	headers := rows[0]
	out := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]any, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		out = append(out, record)
	}

	return headers, out, nil
}

// mappedEqual compares only the mapped columns, so rows enriched with ids and
// timestamps still compare equal to their source records.
func mappedEqual(existing, mapped map[string]any) bool {
	for column, value := range mapped {
		if canonical(existing[column]) != canonical(value) {
			return false
		}
	}
	return true
}

// canonical folds JSON-decoded and driver-returned values into one comparable
// string form: 3, 3.0, int64(3) and "3" all collapse to "3".
func canonical(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return normalizeJSONText(val)
	case []byte:
		return normalizeJSONText(string(val))
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return canonical(float64(val))
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// normalizeJSONText re-encodes JSON object/array text so the store's jsonb
// rendering and encoding/json output compare equal.
func normalizeJSONText(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return s
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return s
	}
	data, err := json.Marshal(decoded)
	if err != nil {
		return s
	}
	return string(data)
}

func toUint(v any) (uint, bool) {
	switch val := v.(type) {
	case int64:
		if val < 0 {
			return 0, false
		}
		return uint(val), true
	case int:
		if val < 0 {
			return 0, false
		}
		return uint(val), true
	case uint:
		return val, true
	case float64:
		if val < 0 || val != math.Trunc(val) {
			return 0, false
		}
		return uint(val), true
	case string:
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}

func (s *importService) publishReport(ctx context.Context, report *models.ImportReport) {
	event := events.NewEvent(events.ImportCompleted, events.BulkChange{
		Table:    report.Table,
		Records:  report.Total,
		Inserted: report.Inserted,
		Updated:  report.Updated,
		Skipped:  report.Skipped,
		Failed:   report.Failed,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish import event", "error", err)
	}
}
