package models

import "time"

type LeadStatus string

const (
	LeadProspect     LeadStatus = "PROSPECT"
	LeadNegotiating  LeadStatus = "NEGOTIATING"
	LeadProposalSent LeadStatus = "PROPOSAL_SENT"
	LeadWon          LeadStatus = "WON"
	LeadLost         LeadStatus = "LOST"
)

// Lead is a pre-client sales record. Not tenant-scoped, admin-only.
type Lead struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Company        string     `gorm:"size:255" json:"company"`
	Email          string     `gorm:"size:255" json:"email"`
	Phone          string     `gorm:"size:50" json:"phone"`
	Status         LeadStatus `gorm:"type:varchar(20);not null" json:"status"`
	EstimatedValue float64    `json:"estimatedValue"`
	Notes          string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
