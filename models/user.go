package models

import "time"

// Role is the closed set of account roles. Principals and admins review
// applications; plain users only own them.
type Role string

const (
	RoleUser      Role = "user"
	RolePrincipal Role = "principal"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RolePrincipal, RoleAdmin:
		return true
	}
	return false
}

// Reviewer reports whether the role may decide on applications and read
// aggregate stats.
func (r Role) Reviewer() bool {
	return r == RolePrincipal || r == RoleAdmin
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:120;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"size:20;not null;default:'user'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
