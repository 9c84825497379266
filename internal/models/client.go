package models

import "time"

// Client is the tenant: the unit of data isolation for CLIENT-role users.
type Client struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	CompanyName string `gorm:"size:255;not null" json:"companyName"`
	ContactName string `gorm:"size:255" json:"contactName"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:50" json:"phone"`
	Notes       string `gorm:"type:text" json:"notes"`
	VIP         bool   `json:"vip"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
