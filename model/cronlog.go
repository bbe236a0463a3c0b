package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CronJobLog records one run of a scheduled job
type CronJobLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	JobName     string     `gorm:"not null;index" json:"jobName"`
	Status      string     `gorm:"not null" json:"status"` // running, completed, failed
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Message     string     `json:"message"`
	ErrorMsg    string     `json:"errorMsg"`
}

func (c *CronJobLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
