package models

import "gorm.io/datatypes"

// ErrorResponse is the error envelope every endpoint returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Detalle string `json:"detalle,omitempty"`
}

// ===== Hierarchy requests =====

type GradoCreateRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

type AreaCreateRequest struct {
	Nombre  string `json:"nombre" validate:"required"`
	GradoID uint   `json:"grado_id" validate:"required"`
}

type TemaCreateRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	AreaID uint   `json:"area_id" validate:"required"`
}

type ArticuloCreateRequest struct {
	Titulo    string         `json:"titulo" validate:"required"`
	Contenido datatypes.JSON `json:"contenido"`
	GradoID   uint           `json:"grado_id" validate:"required"`
	AreaID    uint           `json:"area_id" validate:"required"`
	TemaID    uint           `json:"tema_id" validate:"required"`
	UsuarioID uint           `json:"usuario_id" validate:"required"`
}

// ArticuloUpdateRequest leaves usuario_id optional; when absent the stored
// value is kept (COALESCE semantics).
type ArticuloUpdateRequest struct {
	Titulo    string         `json:"titulo" validate:"required"`
	Contenido datatypes.JSON `json:"contenido"`
	GradoID   uint           `json:"grado_id" validate:"required"`
	AreaID    uint           `json:"area_id" validate:"required"`
	TemaID    uint           `json:"tema_id" validate:"required"`
	UsuarioID *uint          `json:"usuario_id"`
}

// ===== Users / auth =====

type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol" validate:"omitempty,oneof=estudiante administrador"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Usuario *Usuario `json:"usuario"`
}

type UsuarioUpdateRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Rol    string `json:"rol" validate:"required,oneof=estudiante administrador"`
}

// ===== Backup =====

// BackupPayload is the snapshot artifact: every hierarchy table, ordered by id.
type BackupPayload struct {
	Grados    []Grado    `json:"grados"`
	Areas     []Area     `json:"areas"`
	Temas     []Tema     `json:"temas"`
	Articulos []Articulo `json:"articulos"`
}

// ===== Generic import surface =====

type InsertDataRequest struct {
	TableName string         `json:"tableName" validate:"required"`
	Data      map[string]any `json:"data" validate:"required"`
}

// ImportDataRequest drives the server-side reconciliation run. Mappings maps
// source field names to destination column names.
type ImportDataRequest struct {
	TableName string            `json:"tableName" validate:"required"`
	Mappings  map[string]string `json:"mappings" validate:"required"`
	Data      []map[string]any  `json:"data" validate:"required"`
}

type ImportAction string

const (
	ImportInserted ImportAction = "inserted"
	ImportUpdated  ImportAction = "updated"
	ImportSkipped  ImportAction = "skipped"
	ImportFailed   ImportAction = "failed"
)

// ImportRecordResult reports one record's outcome in a reconciliation run.
type ImportRecordResult struct {
	Index    int          `json:"index"`
	Action   ImportAction `json:"action"`
	Key      string       `json:"key,omitempty"`
	Error    string       `json:"error,omitempty"`
	Progress float64      `json:"progress"`
}

type ImportReport struct {
	Table    string               `json:"table"`
	Total    int                  `json:"total"`
	Inserted int                  `json:"inserted"`
	Updated  int                  `json:"updated"`
	Skipped  int                  `json:"skipped"`
	Failed   int                  `json:"failed"`
	Records  []ImportRecordResult `json:"records"`
}

// StatsResponse is the admin row-count dashboard.
type StatsResponse struct {
	Grados    int64 `json:"grados"`
	Areas     int64 `json:"areas"`
	Temas     int64 `json:"temas"`
	Articulos int64 `json:"articulos"`
	Usuarios  int64 `json:"usuarios"`
}
