package models

import (
	"time"

	"gorm.io/gorm"
)

type Form struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by" gorm:"index;not null"`
	IsPublished bool   `json:"is_published" gorm:"not null;default:false"`

	AccessMode AccessMode `json:"access_mode" gorm:"not null;default:'public'"`
	// AccessPassword is only meaningful while AccessMode is AccessPassword.
	// Stored in clear so the resolver can do a plain comparison.
	AccessPassword string `json:"-"`

	// PublicID and Link are empty until the form is published; a settings
	// change reissues both for already-published forms.
	PublicID string `json:"public_id" gorm:"index"`
	Link     string `json:"link"`

	Views          int `json:"views" gorm:"not null;default:0"`
	ResponsesCount int `json:"responses_count" gorm:"not null;default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE"`
	Answers   []Answer   `json:"answers,omitempty" gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE"`
}
