package models

import (
	"time"

	"gorm.io/datatypes"
)

// Grado is the root of the content hierarchy.
type Grado struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Nombre string `json:"nombre" gorm:"not null;size:200" validate:"required"`
}

func (Grado) TableName() string {
	return "grados"
}

// Area belongs to exactly one Grado. Deleting a grado that still has areas
// fails on the constraint; the violation surfaces as a foreign-key error.
type Area struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Nombre  string `json:"nombre" gorm:"not null;size:200" validate:"required"`
	GradoID uint   `json:"grado_id" gorm:"not null;index" validate:"required"`

	Grado *Grado `json:"-" gorm:"foreignKey:GradoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Area) TableName() string {
	return "areas"
}

// Tema belongs to exactly one Area.
type Tema struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Nombre string `json:"nombre" gorm:"not null;size:200" validate:"required"`
	AreaID uint   `json:"area_id" gorm:"not null;index" validate:"required"`

	Area *Area `json:"-" gorm:"foreignKey:AreaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Tema) TableName() string {
	return "temas"
}

// Articulo references all three hierarchy levels redundantly. The store does
// not enforce that grado/area match the tema's ancestry; the levels are kept
// denormalized so the reading UI can filter without joins.
type Articulo struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Titulo    string         `json:"titulo" gorm:"not null;size:300;index"`
	Contenido datatypes.JSON `json:"contenido" gorm:"type:jsonb"`
	GradoID   uint           `json:"grado_id" gorm:"not null;index"`
	AreaID    uint           `json:"area_id" gorm:"not null;index"`
	TemaID    uint           `json:"tema_id" gorm:"not null;index"`
	UsuarioID uint           `json:"usuario_id" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Grado   *Grado   `json:"-" gorm:"foreignKey:GradoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Area    *Area    `json:"-" gorm:"foreignKey:AreaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Tema    *Tema    `json:"-" gorm:"foreignKey:TemaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Usuario *Usuario `json:"-" gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Articulo) TableName() string {
	return "articulos"
}
