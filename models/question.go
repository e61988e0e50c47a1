package models

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	FormID uint   `json:"form_id" gorm:"not null;index"`
	Title  string `json:"title" gorm:"not null"`
	// Type is a free-form tag ("text", "multiple-choice", ...); the backend
	// does not interpret it.
	Type        string         `json:"type" gorm:"not null"`
	Options     []string       `json:"options" gorm:"serializer:json"`
	Required    bool           `json:"required" gorm:"not null;default:false"`
	Description string         `json:"description"`
	Order       int            `json:"order" gorm:"not null;default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Form Form `json:"form,omitempty" gorm:"foreignKey:FormID"`
}
