package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authentication methods. A principal's method is fixed at creation:
// a password account can never complete a federated login and vice versa.
const (
	MethodPassword  = "password"
	MethodFederated = "federated"
)

// User represents a registered learner
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	ImageURL     string    `json:"imageUrl"`
	Method       string    `gorm:"type:varchar(20);not null" json:"method"` // password, federated
	PasswordHash string    `json:"-"`                                       // Never expose password in JSON
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	IsVerified   bool      `gorm:"default:false" json:"isVerified"`
	LastLogin    time.Time `json:"lastLogin"`

	// Relationships
	Progress []UserProgress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Admin is the narrow administrator principal. Admins live in their own
// table and only authenticate with a password.
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `json:"-"`
	LastLogin    time.Time `json:"lastLogin"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
