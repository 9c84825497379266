package store

import (
	"time"

	"clienthub/internal/models"
)

// Patch structs carry partial updates: a nil field is left untouched.
// changes() feeds gorm column updates; Apply mutates an in-memory copy.
// Both paths must agree, which the store tests pin down.

type ClientPatch struct {
	CompanyName *string
	ContactName *string
	Email       *string
	Phone       *string
	Notes       *string
	VIP         *bool
}

func (p ClientPatch) changes() map[string]any {
	m := map[string]any{}
	setStr(m, "company_name", p.CompanyName)
	setStr(m, "contact_name", p.ContactName)
	setStr(m, "email", p.Email)
	setStr(m, "phone", p.Phone)
	setStr(m, "notes", p.Notes)
	if p.VIP != nil {
		m["vip"] = *p.VIP
	}
	return m
}

func (p ClientPatch) Apply(c *models.Client) {
	applyStr(&c.CompanyName, p.CompanyName)
	applyStr(&c.ContactName, p.ContactName)
	applyStr(&c.Email, p.Email)
	applyStr(&c.Phone, p.Phone)
	applyStr(&c.Notes, p.Notes)
	if p.VIP != nil {
		c.VIP = *p.VIP
	}
}

type ProjectPatch struct {
	Name                *string
	Description         *string
	Owner               *models.Owner
	ProjectType         *string
	Stack               *string
	ProductionURL       *string
	StagingURL          *string
	RepositoryURL       *string
	FigmaURL            *string
	DocsURL             *string
	Status              *models.ProjectStatus
	VisibilityForClient *bool
	Lighthouse          *models.LighthouseMetrics
	StartDate           *time.Time
	ExpectedEndDate     *time.Time
	IsArchived          *bool
}

func (p ProjectPatch) changes() map[string]any {
	m := map[string]any{}
	setStr(m, "name", p.Name)
	setStr(m, "description", p.Description)
	if p.Owner != nil {
		m["client_id"] = *p.Owner
	}
	setStr(m, "project_type", p.ProjectType)
	setStr(m, "stack", p.Stack)
	setStr(m, "production_url", p.ProductionURL)
	setStr(m, "staging_url", p.StagingURL)
	setStr(m, "repository_url", p.RepositoryURL)
	setStr(m, "figma_url", p.FigmaURL)
	setStr(m, "docs_url", p.DocsURL)
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.VisibilityForClient != nil {
		m["visibility_for_client"] = *p.VisibilityForClient
	}
	if p.Lighthouse != nil {
		m["lh_performance"] = p.Lighthouse.Performance
		m["lh_accessibility"] = p.Lighthouse.Accessibility
		m["lh_best_practices"] = p.Lighthouse.BestPractices
		m["lh_seo"] = p.Lighthouse.SEO
	}
	if p.StartDate != nil {
		m["start_date"] = *p.StartDate
	}
	if p.ExpectedEndDate != nil {
		m["expected_end_date"] = *p.ExpectedEndDate
	}
	if p.IsArchived != nil {
		m["is_archived"] = *p.IsArchived
	}
	return m
}

func (p ProjectPatch) Apply(pr *models.Project) {
	applyStr(&pr.Name, p.Name)
	applyStr(&pr.Description, p.Description)
	if p.Owner != nil {
		pr.Owner = *p.Owner
	}
	applyStr(&pr.ProjectType, p.ProjectType)
	applyStr(&pr.Stack, p.Stack)
	applyStr(&pr.ProductionURL, p.ProductionURL)
	applyStr(&pr.StagingURL, p.StagingURL)
	applyStr(&pr.RepositoryURL, p.RepositoryURL)
	applyStr(&pr.FigmaURL, p.FigmaURL)
	applyStr(&pr.DocsURL, p.DocsURL)
	if p.Status != nil {
		pr.Status = *p.Status
	}
	if p.VisibilityForClient != nil {
		pr.VisibilityForClient = *p.VisibilityForClient
	}
	if p.Lighthouse != nil {
		lh := *p.Lighthouse
		pr.Lighthouse = &lh
	}
	if p.StartDate != nil {
		t := *p.StartDate
		pr.StartDate = &t
	}
	if p.ExpectedEndDate != nil {
		t := *p.ExpectedEndDate
		pr.ExpectedEndDate = &t
	}
	if p.IsArchived != nil {
		pr.IsArchived = *p.IsArchived
	}
}

type RequestPatch struct {
	Title        *string
	Description  *string
	Status       *models.RequestStatus
	AdminComment *string
}

func (p RequestPatch) changes() map[string]any {
	m := map[string]any{}
	setStr(m, "title", p.Title)
	setStr(m, "description", p.Description)
	if p.Status != nil {
		m["status"] = *p.Status
	}
	setStr(m, "admin_comment", p.AdminComment)
	return m
}

func (p RequestPatch) Apply(r *models.ChangeRequest) {
	applyStr(&r.Title, p.Title)
	applyStr(&r.Description, p.Description)
	if p.Status != nil {
		r.Status = *p.Status
	}
	applyStr(&r.AdminComment, p.AdminComment)
}

type LeadPatch struct {
	Name           *string
	Company        *string
	Email          *string
	Phone          *string
	Status         *models.LeadStatus
	EstimatedValue *float64
	Notes          *string
}

func (p LeadPatch) changes() map[string]any {
	m := map[string]any{}
	setStr(m, "name", p.Name)
	setStr(m, "company", p.Company)
	setStr(m, "email", p.Email)
	setStr(m, "phone", p.Phone)
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.EstimatedValue != nil {
		m["estimated_value"] = *p.EstimatedValue
	}
	setStr(m, "notes", p.Notes)
	return m
}

func (p LeadPatch) Apply(l *models.Lead) {
	applyStr(&l.Name, p.Name)
	applyStr(&l.Company, p.Company)
	applyStr(&l.Email, p.Email)
	applyStr(&l.Phone, p.Phone)
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.EstimatedValue != nil {
		l.EstimatedValue = *p.EstimatedValue
	}
	applyStr(&l.Notes, p.Notes)
}

func setStr(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = *v
	}
}

func applyStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
