package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types
const (
	QuestionTypeMCQ       = "MCQ"
	QuestionTypeFillBlank = "FILL_BLANK"
	QuestionTypeText      = "TEXT"
	QuestionTypeAudio     = "AUDIO"
)

// Question belongs to a unit and carries a type-specific QuestionData payload
type Question struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	UnitID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"unitId"`
	CourseID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"courseId"`
	Type         string         `gorm:"type:varchar(20);not null" json:"type"` // MCQ, FILL_BLANK, TEXT, AUDIO
	QuestionText string         `gorm:"type:text;not null" json:"questionText"`
	Explanation  string         `gorm:"type:text" json:"explanation,omitempty"`
	Points       int            `gorm:"default:1" json:"points"`
	Difficulty   string         `gorm:"type:varchar(10)" json:"difficulty,omitempty"` // easy, medium, hard
	Order        int            `gorm:"not null;column:sort_order" json:"order"`
	Media        datatypes.JSON `json:"media,omitempty"`
	QuestionData datatypes.JSON `json:"questionData,omitempty"`
	IsActive     bool           `gorm:"default:true" json:"isActive"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
