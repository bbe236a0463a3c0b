package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is the top of the content hierarchy: Course -> Unit -> Question
type Course struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Instructor   string         `gorm:"not null" json:"instructor"`
	InstructorID uuid.UUID      `gorm:"type:uuid;index" json:"instructorId"`
	Category     string         `gorm:"type:varchar(50);not null" json:"category"`
	Level        string         `gorm:"type:varchar(20);not null" json:"level"`
	Price        float64        `gorm:"default:0" json:"price"`
	Currency     string         `gorm:"type:varchar(10)" json:"currency,omitempty"`
	Tags         datatypes.JSON `json:"tags,omitempty"`
	IsActive     bool           `gorm:"default:true" json:"isActive"`
	IsPublished  bool           `gorm:"default:false" json:"isPublished"`

	// Relationships
	Units []Unit `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"units,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
