package models

import "time"

type RequestType string

const (
	RequestBug         RequestType = "BUG"
	RequestImprovement RequestType = "IMPROVEMENT"
	RequestNewFeature  RequestType = "NEW_FEATURE"
)

type RequestStatus string

const (
	RequestOpen      RequestStatus = "OPEN"
	RequestReviewing RequestStatus = "REVIEWING"
	RequestApproved  RequestStatus = "APPROVED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestDone      RequestStatus = "DONE"
)

// ChangeRequest is a ticket a client raises against one of their visible
// projects. Clients only ever create and read; all transitions are admin
// actions carrying a response comment.
type ChangeRequest struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	ProjectID    string        `gorm:"size:36;index;not null" json:"projectId"`
	ClientID     string        `gorm:"size:36;index;not null" json:"clientId"`
	Title        string        `gorm:"size:255;not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description"`
	Type         RequestType   `gorm:"type:varchar(20);not null" json:"type"`
	Status       RequestStatus `gorm:"type:varchar(20);not null" json:"status"`
	AdminComment string        `gorm:"type:text" json:"adminComment"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
