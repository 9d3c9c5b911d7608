package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  string = "admin"
	RoleEditor string = "editor"
)

type Role struct {
	ID        uuid.UUID      `gorm:"primaryKey;type:uuid;not null;unique;default:gen_random_uuid()" json:"id"`
	Title     string         `gorm:"size:50;not null" json:"title"`
	Name      string         `gorm:"size:50;not null;unique" json:"name"`
	CreatedAt time.Time      `gorm:"not null;default:clock_timestamp()" json:"-"`
	UpdatedAt time.Time      `gorm:"not null;default:clock_timestamp()" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsKnownRole reports whether name is one of the roles the policy knows.
func IsKnownRole(name string) bool {
	for _, r := range DefaultRoles() {
		if r.Name == name {
			return true
		}
	}

	return false
}

// DefaultRoles are created at startup when missing.
func DefaultRoles() []Role {
	return []Role{
		{Name: RoleAdmin, Title: "Administrator"},
		{Name: RoleEditor, Title: "Content editor"},
	}
}
