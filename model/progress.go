package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerRecord is one graded (or recorded) answer inside UserProgress.Answers
type AnswerRecord struct {
	QuestionID   uuid.UUID   `json:"questionId"`
	Answer       interface{} `json:"answer"`
	IsCorrect    bool        `json:"isCorrect"`
	PointsEarned int         `json:"pointsEarned"`
	AnsweredAt   time.Time   `json:"answeredAt"`
	TimeSpent    int         `json:"timeSpent"` // seconds
	Attempts     int         `json:"attempts"`
}

// UserProgress tracks one user's journey through one course.
// The (UserID, CourseID) pair is unique.
type UserProgress struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_user_course" json:"courseId"`
	EnrolledAt     time.Time      `json:"enrolledAt"`
	LastAccessedAt time.Time      `json:"lastAccessedAt"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	CurrentUnit    *uuid.UUID     `gorm:"type:uuid" json:"currentUnit,omitempty"`
	CompletedUnits datatypes.JSON `json:"completedUnits,omitempty"` // array of unit ids
	Answers        datatypes.JSON `json:"answers,omitempty"`        // array of AnswerRecord
	ScoreEarned    int            `gorm:"default:0" json:"scoreEarned"`
	ScoreTotal     int            `gorm:"default:0" json:"scoreTotal"`
	ScorePercent   float64        `gorm:"default:0" json:"scorePercent"`
}

func (p *UserProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
