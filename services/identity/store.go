package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursebox/content-api/model"
)

// UserStore backs the user realm with the users table
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user-realm store
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Principal{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		ImageURL:     user.ImageURL,
		Method:       user.Method,
		PasswordHash: user.PasswordHash,
		IsVerified:   user.IsVerified,
	}, nil
}

func (s *UserStore) Create(ctx context.Context, p *Principal) error {
	user := model.User{
		Email:        p.Email,
		Name:         p.Name,
		ImageURL:     p.ImageURL,
		Method:       p.Method,
		PasswordHash: p.PasswordHash,
		IsActive:     true,
		IsVerified:   p.IsVerified,
		LastLogin:    time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}
	p.ID = user.ID
	return nil
}

func (s *UserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// AdminStore backs the admin realm with the admins table
type AdminStore struct {
	db *gorm.DB
}

// NewAdminStore creates an admin-realm store
func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Principal{
		ID:           admin.ID,
		Email:        admin.Email,
		Name:         admin.Name,
		Method:       model.MethodPassword,
		PasswordHash: admin.PasswordHash,
		IsVerified:   true,
	}, nil
}

func (s *AdminStore) Create(ctx context.Context, p *Principal) error {
	admin := model.Admin{
		Email:        p.Email,
		Name:         p.Name,
		PasswordHash: p.PasswordHash,
		LastLogin:    time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	p.ID = admin.ID
	return nil
}

func (s *AdminStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&model.Admin{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}
