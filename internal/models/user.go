package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleClient UserRole = "CLIENT"
)

// User links an authenticated subject to a role and, for CLIENT users,
// to the tenant whose data they may see. A subject with no User record
// is "pending activation", not an error.
type User struct {
	ID           string   `gorm:"primaryKey;size:36" json:"id"`
	Name         string   `gorm:"size:255;not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone        string   `gorm:"size:50" json:"phone,omitempty"`
	PasswordHash string   `gorm:"size:255" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	IsActive     bool     `json:"isActive"`
	ClientID     string   `gorm:"size:36;index" json:"clientId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
