package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a content administrator account.
type User struct {
	ID        uuid.UUID      `gorm:"primaryKey;type:uuid;not null;unique;default:gen_random_uuid()" json:"id"`
	Name      *string        `gorm:"size:100" json:"name"`
	Email     string         `gorm:"size:100;not null;unique" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Active    *bool          `gorm:"not null;default:true" json:"active"`
	LastLogin *time.Time     `json:"-"`
	Roles     []Role         `gorm:"many2many:user_roles;" json:"-"`
	CreatedAt time.Time      `gorm:"not null;default:clock_timestamp()" json:"-"`
	UpdatedAt time.Time      `gorm:"not null;default:clock_timestamp()" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (u User) IsActive() bool {
	return u.Active != nil && *u.Active
}

func (u User) RoleNames() []string {
	names := []string{}

	for _, r := range u.Roles {
		names = append(names, r.Name)
	}

	return names
}
