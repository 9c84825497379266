package models

import "time"

type ProjectStatus string

const (
	StatusIdea        ProjectStatus = "IDEA"
	StatusDevelopment ProjectStatus = "DEVELOPMENT"
	StatusTesting     ProjectStatus = "TESTING"
	StatusProduction  ProjectStatus = "PRODUCTION"
	StatusMaintenance ProjectStatus = "MAINTENANCE"
	StatusPaused      ProjectStatus = "PAUSED"
	StatusFinished    ProjectStatus = "FINISHED"
)

// LighthouseMetrics is the optional quality bundle, four 0-100 scores.
type LighthouseMetrics struct {
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"bestPractices"`
	SEO           int `json:"seo"`
}

type Project struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Owner       Owner  `gorm:"column:client_id;type:varchar(36);index" json:"clientId"`
	ProjectType string `gorm:"size:100" json:"projectType"`
	Stack       string `gorm:"size:255" json:"stack"`

	ProductionURL string `gorm:"size:512" json:"productionUrl"`
	StagingURL    string `gorm:"size:512" json:"stagingUrl"`
	RepositoryURL string `gorm:"size:512" json:"repositoryUrl"`
	FigmaURL      string `gorm:"size:512" json:"figmaUrl,omitempty"`
	DocsURL       string `gorm:"size:512" json:"docsUrl,omitempty"`

	Status              ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	VisibilityForClient bool          `json:"visibilityForClient"`

	Lighthouse *LighthouseMetrics `gorm:"embedded;embeddedPrefix:lh_" json:"lighthouseMetrics,omitempty"`

	StartDate       *time.Time `json:"startDate,omitempty"`
	ExpectedEndDate *time.Time `json:"expectedEndDate,omitempty"`

	IsArchived bool `json:"isArchived"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
