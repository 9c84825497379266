package models

import "time"

type EntityType string

const (
	EntityProject EntityType = "PROJECT"
	EntityClient  EntityType = "CLIENT"
	EntityUser    EntityType = "USER"
	EntityRequest EntityType = "REQUEST"
	EntityLead    EntityType = "LEAD"
)

// AuditLog is write-once. Entries are never updated or deleted and are
// only readable through the admin audit view.
type AuditLog struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Action     string     `gorm:"size:50;not null" json:"action"`
	EntityType EntityType `gorm:"type:varchar(20);not null" json:"entityType"`
	EntityID   string     `gorm:"size:36" json:"entityId"`
	UserName   string     `gorm:"size:255" json:"userName"`
	Details    string     `gorm:"type:text" json:"details"`

	CreatedAt time.Time `json:"createdAt"`
}
