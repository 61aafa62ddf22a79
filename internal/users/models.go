package users

import (
	"time"

	"github.com/google/uuid"
)

// Role of a holder account. Operators record entries and exits at the gate,
// admins manage facilities and slot inventory.
type Role string

const (
	RoleOperator Role = "OPERATOR"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name        string    `json:"name" gorm:"not null"`
	CompanyName string    `json:"company_name"`
	Password    string    `json:"-" gorm:"not null"` // hide in json
	Role        Role      `json:"role" gorm:"not null;default:'OPERATOR'"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	MobileNo    string    `json:"mobile_no"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleOperator), string(RoleAdmin):
		return true
	default:
		return false
	}
}
