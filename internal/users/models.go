package users

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies an operator account. Designers own and edit layouts,
// admins additionally manage other accounts and published layouts.
type Role string

const (
	RoleDesigner Role = "DESIGNER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'DESIGNER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleDesigner), string(RoleAdmin):
		return true
	default:
		return false
	}
}
