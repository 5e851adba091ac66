package models

import "time"

type UserRole string

const (
	RolEstudiante    UserRole = "estudiante"
	RolAdministrador UserRole = "administrador"
)

// Usuario is a platform account. Password holds the bcrypt hash and is never
// serialized; every endpoint that returns users relies on this tag instead of
// stripping the field by hand.
type Usuario struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Nombre   string   `json:"nombre" gorm:"not null;size:200"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:100"`
	Rol      UserRole `json:"rol" gorm:"not null;size:20;default:estudiante"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Usuario) TableName() string {
	return "usuarios"
}
