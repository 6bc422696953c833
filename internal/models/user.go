package models

import "time"

// Role separates ordinary members from professionals, who are the only
// users allowed to post answers.
type Role string

const (
	RoleMember       Role = "member"
	RoleProfessional Role = "professional"
)

// User represents a registered account.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Nome         string `gorm:"size:64;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:16;not null;default:member"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Professional reports whether the user may post answers.
func (u *User) Professional() bool {
	return u.Role == RoleProfessional
}

// RoleFor maps the wire-level "profissional" flag onto a Role.
func RoleFor(profissional bool) Role {
	if profissional {
		return RoleProfessional
	}
	return RoleMember
}
