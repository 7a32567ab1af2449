package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID                 uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username           string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	PasswordHash       string     `gorm:"type:varchar(255);not null" json:"-"`
	Name               string     `gorm:"type:varchar(64);not null" json:"name"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role               UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Expired            bool       `gorm:"not null" json:"expired"`
	Locked             bool       `gorm:"not null" json:"locked"`
	CredentialsExpired bool       `gorm:"not null" json:"credentials_expired"`
	Enabled            bool       `gorm:"not null" json:"enabled"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// BeforeCreate assigns a random id to users created without one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
