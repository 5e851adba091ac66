package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/colibri-edu/content-service/internal/cache"
	"github.com/colibri-edu/content-service/internal/repositories"
	"github.com/colibri-edu/content-service/internal/schema"
)

// TablaPostgreSQL is the generic row store behind the import surface. Table
// and column identifiers are resolved through internal/schema before any SQL
// is built; caller strings never reach the query text, only its parameters.
type TablaPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTablaPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.TablaRepository {
	return &TablaPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (t *TablaPostgreSQL) ListRows(ctx context.Context, table string) ([]map[string]any, error) {
	tbl, ok := schema.Lookup(table)
	if !ok {
		return nil, fmt.Errorf("list rows: %w: %s", repositories.ErrUnknownTable, table)
	}

	rows, err := t.db.WithContext(ctx).Raw("SELECT * FROM " + tbl.Name + " ORDER BY id").Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s rows: %w", tbl.Name, repositories.ClassifyError(err))
	}
	defer rows.Close()

	return scanRowMaps(rows)
}

func (t *TablaPostgreSQL) InsertRow(ctx context.Context, table string, data map[string]any) (map[string]any, error) {
	tbl, ok := schema.Lookup(table)
	if !ok {
		return nil, fmt.Errorf("insert row: %w: %s", repositories.ErrUnknownTable, table)
	}

	columns, values, err := splitColumns(tbl, data)
	if err != nil {
		return nil, fmt.Errorf("insert row: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("insert row: %w", repositories.ErrNotNull)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		tbl.Name, strings.Join(columns, ", "), placeholders)

	row, err := t.queryOne(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", tbl.Name, err)
	}

	cache.InvalidateTable(ctx, t.cacheManager, tbl.Name)
	return row, nil
}

func (t *TablaPostgreSQL) UpdateRow(ctx context.Context, table string, id uint, data map[string]any) (map[string]any, error) {
	tbl, ok := schema.Lookup(table)
	if !ok {
		return nil, fmt.Errorf("update row: %w: %s", repositories.ErrUnknownTable, table)
	}

	columns, values, err := splitColumns(tbl, data)
	if err != nil {
		return nil, fmt.Errorf("update row: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("update row: %w", repositories.ErrNotNull)
	}

	assignments := make([]string, len(columns))
	for i, col := range columns {
		assignments[i] = col + " = ?"
	}
	values = append(values, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? RETURNING *",
		tbl.Name, strings.Join(assignments, ", "))

	row, err := t.queryOne(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s row %d: %w", tbl.Name, id, err)
	}

	cache.InvalidateTable(ctx, t.cacheManager, tbl.Name)
	return row, nil
}

func (t *TablaPostgreSQL) RowExists(ctx context.Context, table string, id uint) (bool, error) {
	name, ok := schema.LookupReference(table)
	if !ok {
		return false, fmt.Errorf("row exists: %w: %s", repositories.ErrUnknownTable, table)
	}

	var exists bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)", name)
	if err := t.db.WithContext(ctx).Raw(query, id).Scan(&exists).Error; err != nil {
		return false, fmt.Errorf("failed to check %s row %d: %w", name, id, repositories.ClassifyError(err))
	}
	return exists, nil
}

func (t *TablaPostgreSQL) ResetSequence(ctx context.Context, table string) error {
	tbl, ok := schema.Lookup(table)
	if !ok {
		return fmt.Errorf("reset sequence: %w: %s", repositories.ErrUnknownTable, table)
	}

	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s",
		tbl.Name, tbl.Name)
	if err := t.db.WithContext(ctx).Exec(query).Error; err != nil {
		return fmt.Errorf("failed to reset %s sequence: %w", tbl.Name, repositories.ClassifyError(err))
	}
	return nil
}

// splitColumns filters the field map through the table's allow-list, in
// deterministic column order. Any key that is not a writable column aborts the
// whole operation.
func splitColumns(tbl schema.Table, data map[string]any) ([]string, []any, error) {
	keys := make([]string, 0, len(data))
	for key := range data {
		if !tbl.HasColumn(key) {
			return nil, nil, fmt.Errorf("%w: %s.%s", repositories.ErrColumnNotAllowed, tbl.Name, key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]any, len(keys))
	for i, key := range keys {
		values[i] = bindValue(data[key])
	}
	return keys, values, nil
}

// bindValue prepares a decoded JSON value for use as a query parameter.
// Structured values (article contenido) are re-encoded for the jsonb column.
func bindValue(v any) any {
	switch v.(type) {
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return v
		}
		return string(data)
	default:
		return v
	}
}

func (t *TablaPostgreSQL) queryOne(ctx context.Context, query string, args ...any) (map[string]any, error) {
	rows, err := t.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, repositories.ClassifyError(err)
	}
	defer rows.Close()

	result, err := scanRowMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, repositories.ErrNotFound
	}
	return result[0], nil
}

// scanRowMaps reads every row into a column-keyed map.
func scanRowMaps(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return out, nil
}

// normalizeValue makes driver values JSON-friendly and comparable: byte
// slices become strings, which also covers jsonb payloads.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
