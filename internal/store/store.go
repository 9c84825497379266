package store

import (
	"context"

	"clienthub/internal/models"

	"github.com/google/uuid"
)

// Store is the document-store facade. Implementations own id generation
// and timestamp stamping; updates are partial merges (nil patch fields are
// preserved). Read-one returns (nil, nil) when the id does not exist:
// absence is a result, not an error. Listings are ordered by creation
// time, newest first.
type Store interface {
	UserStore
	ClientStore
	ProjectStore
	LogStore
	RequestStore
	LeadStore
	AuditStore
}

type UserStore interface {
	// UpsertUser writes a user record keyed by the caller-supplied subject
	// id, creating or replacing it. CreatedAt is preserved on replace.
	UpsertUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// DeleteUser permanently removes the record. Irreversible.
	DeleteUser(ctx context.Context, id string) error
}

type ClientStore interface {
	CreateClient(ctx context.Context, c *models.Client) (string, error)
	UpdateClient(ctx context.Context, id string, p ClientPatch) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
}

type ProjectStore interface {
	// CreateProject always stores the project unarchived.
	CreateProject(ctx context.Context, p *models.Project) (string, error)
	UpdateProject(ctx context.Context, id string, p ProjectPatch) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context, includeArchived bool) ([]models.Project, error)
	// ListTenantProjects returns projects owned by the given tenant,
	// optionally restricted to client-visible ones. Internal projects are
	// never returned.
	ListTenantProjects(ctx context.Context, clientID string, visibleOnly bool) ([]models.Project, error)
}

// LogQuery narrows a project-log listing. Zero values mean "no filter";
// Limit <= 0 means unbounded.
type LogQuery struct {
	ProjectID   string
	ProjectIDs  []string
	VisibleOnly bool
	Limit       int
}

type LogStore interface {
	CreateLog(ctx context.Context, l *models.ProjectLog) (string, error)
	ListLogs(ctx context.Context, q LogQuery) ([]models.ProjectLog, error)
}

type RequestStore interface {
	CreateRequest(ctx context.Context, r *models.ChangeRequest) (string, error)
	UpdateRequest(ctx context.Context, id string, p RequestPatch) error
	GetRequest(ctx context.Context, id string) (*models.ChangeRequest, error)
	// ListRequests filters by tenant when clientID is non-empty.
	ListRequests(ctx context.Context, clientID string) ([]models.ChangeRequest, error)
}

type LeadStore interface {
	CreateLead(ctx context.Context, l *models.Lead) (string, error)
	UpdateLead(ctx context.Context, id string, p LeadPatch) error
	GetLead(ctx context.Context, id string) (*models.Lead, error)
	ListLeads(ctx context.Context) ([]models.Lead, error)
}

type AuditStore interface {
	AppendAudit(ctx context.Context, e *models.AuditLog) error
	ListAudit(ctx context.Context, limit int) ([]models.AuditLog, error)
}

func newID() string {
	return uuid.NewString()
}
