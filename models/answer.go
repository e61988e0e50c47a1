package models

import (
	"time"

	"gorm.io/gorm"
)

// Answer is one submission event against a form: a single record holding the
// whole questionID -> response map, not one row per question.
type Answer struct {
	ID     uint            `json:"id" gorm:"primaryKey"`
	FormID uint            `json:"form_id" gorm:"not null;index"`
	Values map[uint]string `json:"values" gorm:"serializer:json"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Form Form `json:"form,omitempty" gorm:"foreignKey:FormID"`
}
