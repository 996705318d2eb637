package models

import (
	"time"
)

type UserRole string

const (
	RolePoster    UserRole = "poster"
	RoleJobseeker UserRole = "jobseeker"
)

// Valid reports whether the role is one the system knows. Roles are fixed at
// registration and never change afterwards.
func (r UserRole) Valid() bool {
	return r == RolePoster || r == RoleJobseeker
}

type User struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
