package domain

import "gorm.io/gorm"

// Role is the global role an account carries. It is independent of any
// per-project membership role.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsManager() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"display_name"`
	Bio          string `gorm:"type:text" json:"bio"`
	AvatarURL    string `json:"avatar_url"`
	Role         Role   `gorm:"type:varchar(10);not null;default:MEMBER;index" json:"role"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
	gorm.Model
}
