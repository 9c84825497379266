package models

import "time"

type LogType string

const (
	LogUpdate    LogType = "UPDATE"
	LogIssue     LogType = "ISSUE"
	LogMilestone LogType = "MILESTONE"
	LogNote      LogType = "NOTE"
)

// ProjectLog is one timeline entry of a project. Entries are written by
// admins or synthesized on status transitions; the VisibleToClient gate
// decides whether the owning tenant sees the entry at all.
type ProjectLog struct {
	ID              string  `gorm:"primaryKey;size:36" json:"id"`
	ProjectID       string  `gorm:"size:36;index;not null" json:"projectId"`
	LogType         LogType `gorm:"type:varchar(20);not null" json:"logType"`
	Title           string  `gorm:"size:255;not null" json:"title"`
	Description     string  `gorm:"type:text" json:"description"`
	VisibleToClient bool    `json:"visibleToClient"`
	CreatedBy       string  `gorm:"size:255" json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
}
