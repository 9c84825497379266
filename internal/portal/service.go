// Package portal is the engine behind the portal's read and write
// paths: typed facade operations over the store, workflow validation,
// derived log synthesis and audit emission. Reads flow store -> scope ->
// context assembly; writes flow workflow -> store -> audit.
package portal

import (
	"context"
	"fmt"
	"log/slog"

	"clienthub/internal/assistant"
	"clienthub/internal/audit"
	"clienthub/internal/models"
	"clienthub/internal/scope"
	"clienthub/internal/store"
	"clienthub/internal/workflow"
)

const (
	// admin overview feed bound when no project filter is given
	adminLogWindow = 100
	// default audit view size
	auditViewLimit = 50
)

type Service struct {
	store  store.Store
	audit  *audit.Recorder
	gen    assistant.Generator
	logger *slog.Logger
}

func NewService(st store.Store, rec *audit.Recorder, gen assistant.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, audit: rec, gen: gen, logger: logger}
}

// UserBySubject resolves an authenticated subject id to its user record.
// A missing record is (nil, nil): the pending-activation state.
func (s *Service) UserBySubject(ctx context.Context, subject string) (*models.User, error) {
	return s.store.GetUser(ctx, subject)
}

// UserByEmail is the credential-boundary lookup.
func (s *Service) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.GetUserByEmail(ctx, email)
}

// SaveUser links or updates a user record keyed by its subject id.
func (s *Service) SaveUser(ctx context.Context, p scope.Principal, u models.User) error {
	if !p.IsAdmin() {
		return ErrNotAuthorized
	}
	if u.ID == "" {
		return fmt.Errorf("save user: %w", ErrNotFound)
	}
	if err := s.store.UpsertUser(ctx, &u); err != nil {
		return err
	}
	s.audit.Record("SAVE_USER", models.EntityUser, u.ID, p.DisplayName(),
		fmt.Sprintf("user %s provisioned as %s", u.Email, u.Role))
	return nil
}

func (s *Service) ListUsers(ctx context.Context, p scope.Principal) ([]models.User, error) {
	if !p.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.store.ListUsers(ctx)
}

// DeleteUser revokes access permanently. The boundary confirms first;
// here the removal is unconditional.
func (s *Service) DeleteUser(ctx context.Context, p scope.Principal, id string) error {
	if !p.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.audit.Record("DELETE_USER", models.EntityUser, id, p.DisplayName(), "access revoked")
	return nil
}

func (s *Service) CreateClient(ctx context.Context, p scope.Principal, c models.Client) (string, error) {
	if !p.IsAdmin() {
		return "", ErrNotAuthorized
	}
	id, err := s.store.CreateClient(ctx, &c)
	if err != nil {
		return "", err
	}
	s.audit.Record("CREATE_CLIENT", models.EntityClient, id, p.DisplayName(),
		fmt.Sprintf("client %s registered", c.CompanyName))
	return id, nil
}

func (s *Service) UpdateClient(ctx context.Context, p scope.Principal, id string, patch store.ClientPatch) error {
	if !p.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.store.UpdateClient(ctx, id, patch); err != nil {
		return err
	}
	s.audit.Record("UPDATE_CLIENT", models.EntityClient, id, p.DisplayName(), "client record updated")
	return nil
}

func (s *Service) ListClients(ctx context.Context, p scope.Principal) ([]models.Client, error) {
	if !p.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.store.ListClients(ctx)
}

// GetClient lets a client read its own tenant record; nothing else.
func (s *Service) GetClient(ctx context.Context, p scope.Principal, id string) (*models.Client, error) {
	c, err := s.store.GetClient(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	if !p.CanSeeClient(*c) {
		return nil, nil
	}
	return c, nil
}

// CreateProject stores a new project (always unarchived), audits it and
// synthesizes the initial MILESTONE log entry.
func (s *Service) CreateProject(ctx context.Context, p scope.Principal, pr models.Project) (string, error) {
	if !p.IsAdmin() {
		return "", ErrNotAuthorized
	}
	if pr.Status == "" {
		pr.Status = models.StatusIdea
	}
	if !workflow.ValidProjectStatus(pr.Status) {
		return "", fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, pr.Status)
	}

	id, err := s.store.CreateProject(ctx, &pr)
	if err != nil {
		return "", err
	}
	s.audit.Record("CREATE_PROJECT", models.EntityProject, id, p.DisplayName(),
		fmt.Sprintf("project %s started", pr.Name))

	_, err = s.store.CreateLog(ctx, &models.ProjectLog{
		ProjectID:       id,
		LogType:         models.LogMilestone,
		Title:           "Project created",
		Description:     fmt.Sprintf("Project initialized with status: %s", pr.Status),
		VisibleToClient: pr.VisibilityForClient,
		CreatedBy:       p.DisplayName(),
	})
	if err != nil {
		return "", fmt.Errorf("initial project log: %w", err)
	}
	return id, nil
}

// UpdateProject merges non-status fields. Status moves must go through
// ChangeProjectStatus so the derived log cannot be skipped.
func (s *Service) UpdateProject(ctx context.Context, p scope.Principal, id string, patch store.ProjectPatch) error {
	if !p.IsAdmin() {
		return ErrNotAuthorized
	}
	if patch.Status != nil {
		return ErrStatusImmutable
	}
	if err := s.store.UpdateProject(ctx, id, patch); err != nil {
		return err
	}
	s.audit.Record("UPDATE_PROJECT", models.EntityProject, id, p.DisplayName(), "project updated")
	return nil
}

// ChangeProjectStatus validates the transition, merges the new status
// and synthesizes exactly one UPDATE log naming both statuses. The log's
// client visibility follows the project's own gate.
func (s *Service) ChangeProjectStatus(ctx context.Context, p scope.Principal, id string, status models.ProjectStatus) error {
	if !p.IsAdmin() {
		return ErrNotAuthorized
	}
	pr, err := s.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if pr == nil {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err := workflow.CheckProject(pr.Status, status); err != nil {
		return err
	}

	if err := s.store.UpdateProject(ctx, id, store.ProjectPatch{Status: &status}); err != nil {
		return err
	}
	s.audit.Record("UPDATE_STATUS", models.EntityProject, id, p.DisplayName(), string(status))

	_, err = s.store.CreateLog(ctx, &models.ProjectLog{
		ProjectID:       id,
		LogType:         models.LogUpdate,
		Title:           "Status change",
		Description:     fmt.Sprintf("Project status changed: %s -> %s", pr.Status, status),
		VisibleToClient: pr.VisibilityForClient,
		CreatedBy:       p.DisplayName(),
	})
	if err != nil {
		return fmt.Errorf("status change log: %w", err)
	}
	return nil
}

func (s *Service) ArchiveProject(ctx context.Context, p scope.Principal, id string, archived bool) error {
	if !p.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.store.UpdateProject(ctx, id, store.ProjectPatch{IsArchived: &archived}); err != nil {
		return err
	}
	detail := "project archived"
	if !archived {
		detail = "project restored"
	}
	s.audit.Record("ARCHIVE_PROJECT", models.EntityProject, id, p.DisplayName(), detail)
	return nil
}

// ListProjects: admins see everything, archived included on request;
// clients see only their tenant's client-visible projects.
func (s *Service) ListProjects(ctx context.Context, p scope.Principal, includeArchived bool) ([]models.Project, error) {
	if p.IsAdmin() {
		return s.store.ListProjects(ctx, includeArchived)
	}
	tenant, ok := p.Tenant()
	if !ok {
		return nil, scope.ErrUnprovisioned
	}
	return s.store.ListTenantProjects(ctx, tenant, true)
}

// GetProject returns absent for projects outside the caller's scope, so
// a client cannot probe for internal or hidden project ids.
func (s *Service) GetProject(ctx context.Context, p scope.Principal, id string) (*models.Project, error) {
	pr, err := s.store.GetProject(ctx, id)
	if err != nil || pr == nil {
		return nil, err
	}
	if !p.CanSeeProject(*pr) {
		return nil, nil
	}
	return pr, nil
}

// AddLog writes an admin-authored timeline entry.
func (s *Service) AddLog(ctx context.Context, p scope.Principal, l models.ProjectLog) (string, error) {
	if !p.IsAdmin() {
		return "", ErrNotAuthorized
	}
	if l.CreatedBy == "" {
		l.CreatedBy = p.DisplayName()
	}
	id, err := s.store.CreateLog(ctx, &l)
	if err != nil {
		return "", err
	}
	s.audit.Record("ADD_LOG", models.EntityProject, l.ProjectID, p.DisplayName(),
		fmt.Sprintf("%s log: %s", l.LogType, l.Title))
	return id, nil
}

// ListLogs is the timeline read. Admin: all entries, bounded to a recent
// window when unfiltered. Client: only open-gated entries of visible
// projects; a tenant with no visible projects gets an empty set.
func (s *Service) ListLogs(ctx context.Context, p scope.Principal, projectID string) ([]models.ProjectLog, error) {
	if p.IsAdmin() {
		q := store.LogQuery{ProjectID: projectID}
		if projectID == "" {
			q.Limit = adminLogWindow
		}
		return s.store.ListLogs(ctx, q)
	}

	tenant, ok := p.Tenant()
	if !ok {
		return nil, scope.ErrUnprovisioned
	}

	if projectID != "" {
		pr, err := s.store.GetProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if pr == nil || !p.CanSeeProject(*pr) {
			return []models.ProjectLog{}, nil
		}
		return s.store.ListLogs(ctx, store.LogQuery{ProjectID: projectID, VisibleOnly: true})
	}

	projects, err := s.store.ListTenantProjects(ctx, tenant, true)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []models.ProjectLog{}, nil
	}
	ids := make([]string, 0, len(projects))
	for _, pr := range projects {
		ids = append(ids, pr.ID)
	}
	return s.store.ListLogs(ctx, store.LogQuery{ProjectIDs: ids, VisibleOnly: true})
}

// CreateRequest opens a ticket. Creation is client-initiated only,
// always lands in OPEN and is tied to the caller's own tenant.
func (s *Service) CreateRequest(ctx context.Context, p scope.Principal, r models.ChangeRequest) (string, error) {
	tenant, ok := p.Tenant()
	if !ok {
		return "", ErrNotAuthorized
	}
	switch r.Type {
	case models.RequestBug, models.RequestImprovement, models.RequestNewFeature:
	default:
		return "", fmt.Errorf("%w: unknown request type %q", ErrInvalidInput, r.Type)
	}

	pr, err := s.store.GetProject(ctx, r.ProjectID)
	if err != nil {
		return "", err
	}
	if pr == nil || !p.CanSeeProject(*pr) {
		return "", ErrNotAuthorized
	}

	r.ClientID = tenant
	r.Status = models.RequestOpen
	r.AdminComment = ""
	id, err := s.store.CreateRequest(ctx, &r)
	if err != nil {
		return "", err
	}
	s.audit.Record("CREATE_REQUEST", models.EntityRequest, id, p.DisplayName(),
		fmt.Sprintf("%s: %s", r.Type, r.Title))
	return id, nil
}

// TransitionRequest moves a ticket along its lifecycle. The supplied
// comment always overwrites the stored one, empty string included.
func (s *Service) TransitionRequest(ctx context.Context, p scope.Principal, id string, status models.RequestStatus, comment string) error {
	if !p.IsAdmin() {
		return ErrNotAuthorized
	}
	r, err := s.store.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("request %s: %w", id, ErrNotFound)
	}
	if err := workflow.CheckRequest(r.Status, status); err != nil {
		return err
	}

	err = s.store.UpdateRequest(ctx, id, store.RequestPatch{Status: &status, AdminComment: &comment})
	if err != nil {
		return err
	}
	s.audit.Record("UPDATE_REQUEST", models.EntityRequest, id, p.DisplayName(), string(status))
	return nil
}

func (s *Service) ListRequests(ctx context.Context, p scope.Principal) ([]models.ChangeRequest, error) {
	if p.IsAdmin() {
		return s.store.ListRequests(ctx, "")
	}
	tenant, ok := p.Tenant()
	if !ok {
		return nil, scope.ErrUnprovisioned
	}
	return s.store.ListRequests(ctx, tenant)
}

func (s *Service) GetRequest(ctx context.Context, p scope.Principal, id string) (*models.ChangeRequest, error) {
	r, err := s.store.GetRequest(ctx, id)
	if err != nil || r == nil {
		return nil, err
	}
	if !p.CanSeeRequest(*r) {
		return nil, nil
	}
	return r, nil
}

func (s *Service) CreateLead(ctx context.Context, p scope.Principal, l models.Lead) (string, error) {
	if !p.IsAdmin() {
		return "", ErrNotAuthorized
	}
	if l.Status == "" {
		l.Status = models.LeadProspect
	}
	if !workflow.ValidLeadStatus(l.Status) {
		return "", fmt.Errorf("%w: unknown lead status %q", ErrInvalidInput, l.Status)
	}
	id, err := s.store.CreateLead(ctx, &l)
	if err != nil {
		return "", err
	}
	s.audit.Record("CREATE_LEAD", models.EntityLead, id, p.DisplayName(),
		fmt.Sprintf("lead %s (%s)", l.Name, l.Company))
	return id, nil
}

// UpdateLead merges lead fields; a status move is validated against the
// funnel first.
func (s *Service) UpdateLead(ctx context.Context, p scope.Principal, id string, patch store.LeadPatch) error {
	if !p.IsAdmin() {
		return ErrNotAuthorized
	}
	if patch.Status != nil {
		l, err := s.store.GetLead(ctx, id)
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("lead %s: %w", id, ErrNotFound)
		}
		if err := workflow.CheckLead(l.Status, *patch.Status); err != nil {
			return err
		}
	}
	if err := s.store.UpdateLead(ctx, id, patch); err != nil {
		return err
	}
	s.audit.Record("UPDATE_LEAD", models.EntityLead, id, p.DisplayName(), "lead updated")
	return nil
}

func (s *Service) ListLeads(ctx context.Context, p scope.Principal) ([]models.Lead, error) {
	if !p.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.store.ListLeads(ctx)
}

// ListAudit is the admin-only trail view, newest first, bounded.
func (s *Service) ListAudit(ctx context.Context, p scope.Principal, limit int) ([]models.AuditLog, error) {
	if !p.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if limit <= 0 {
		limit = auditViewLimit
	}
	return s.store.ListAudit(ctx, limit)
}
