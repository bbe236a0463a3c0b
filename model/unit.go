package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Unit is a lesson inside a course, ordered by Order within its course
type Unit struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"courseId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description,omitempty"`
	Content     string         `gorm:"type:text" json:"content,omitempty"`
	Order       int            `gorm:"not null;column:sort_order" json:"order"`
	Media       datatypes.JSON `json:"media,omitempty"` // {type, url, duration, thumbnail}
	IsActive    bool           `gorm:"default:true" json:"isActive"`

	// Relationships
	Questions []Question `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
