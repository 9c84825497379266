package portal

import (
	"context"
	"sync"

	"clienthub/internal/models"
	"clienthub/internal/scope"
	"clienthub/internal/store"

	"golang.org/x/sync/errgroup"
)

// AdminContext is the full operational snapshot handed to the
// text-generation collaborator for admin callers. Unavailable names the
// sections whose fetch failed; those come back empty so one outage does
// not sink the whole snapshot, but the caller can still tell "empty"
// from "down".
type AdminContext struct {
	Projects []models.Project       `json:"projects"`
	Logs     []models.ProjectLog    `json:"logs"`
	Clients  []models.Client        `json:"clients"`
	Requests []models.ChangeRequest `json:"requests"`
	Leads    []models.Lead          `json:"leads"`

	Unavailable []string `json:"-"`
}

// ClientContext is the tenant-scoped snapshot: only what the scoping
// engine already allows. No further filtering happens downstream.
type ClientContext struct {
	Projects []models.Project       `json:"projects"`
	Updates  []models.ProjectLog    `json:"updates"`
	Requests []models.ChangeRequest `json:"requests"`

	Unavailable []string `json:"-"`
}

// AdminSnapshot fans out the five independent listings concurrently and
// joins them.
func (s *Service) AdminSnapshot(ctx context.Context, p scope.Principal, includeArchived bool) (*AdminContext, error) {
	if !p.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	cx := &AdminContext{
		Projects: []models.Project{},
		Logs:     []models.ProjectLog{},
		Clients:  []models.Client{},
		Requests: []models.ChangeRequest{},
		Leads:    []models.Lead{},
	}
	var mu sync.Mutex
	degrade := func(section string, err error) {
		s.logger.Warn("context section unavailable", "section", section, "error", err)
		mu.Lock()
		cx.Unavailable = append(cx.Unavailable, section)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.store.ListProjects(gctx, includeArchived)
		if err != nil {
			degrade("projects", err)
			return nil
		}
		cx.Projects = projects
		return nil
	})
	g.Go(func() error {
		logs, err := s.store.ListLogs(gctx, store.LogQuery{Limit: adminLogWindow})
		if err != nil {
			degrade("logs", err)
			return nil
		}
		cx.Logs = logs
		return nil
	})
	g.Go(func() error {
		clients, err := s.store.ListClients(gctx)
		if err != nil {
			degrade("clients", err)
			return nil
		}
		cx.Clients = clients
		return nil
	})
	g.Go(func() error {
		requests, err := s.store.ListRequests(gctx, "")
		if err != nil {
			degrade("requests", err)
			return nil
		}
		cx.Requests = requests
		return nil
	})
	g.Go(func() error {
		leads, err := s.store.ListLeads(gctx)
		if err != nil {
			degrade("leads", err)
			return nil
		}
		cx.Leads = leads
		return nil
	})
	_ = g.Wait()

	return cx, nil
}

// ClientSnapshot builds the tenant view: scoped projects and requests
// concurrently, then the update feed for whatever projects came back.
// Zero visible projects means empty feeds, never an error.
func (s *Service) ClientSnapshot(ctx context.Context, p scope.Principal) (*ClientContext, error) {
	tenant, ok := p.Tenant()
	if !ok {
		return nil, scope.ErrUnprovisioned
	}

	cx := &ClientContext{
		Projects: []models.Project{},
		Updates:  []models.ProjectLog{},
		Requests: []models.ChangeRequest{},
	}
	var mu sync.Mutex
	degrade := func(section string, err error) {
		s.logger.Warn("context section unavailable", "section", section, "error", err)
		mu.Lock()
		cx.Unavailable = append(cx.Unavailable, section)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.store.ListTenantProjects(gctx, tenant, true)
		if err != nil {
			degrade("projects", err)
			return nil
		}
		cx.Projects = projects
		return nil
	})
	g.Go(func() error {
		requests, err := s.store.ListRequests(gctx, tenant)
		if err != nil {
			degrade("requests", err)
			return nil
		}
		cx.Requests = requests
		return nil
	})
	_ = g.Wait()

	if len(cx.Projects) == 0 {
		return cx, nil
	}

	ids := make([]string, 0, len(cx.Projects))
	for _, pr := range cx.Projects {
		ids = append(ids, pr.ID)
	}
	updates, err := s.store.ListLogs(ctx, store.LogQuery{ProjectIDs: ids, VisibleOnly: true})
	if err != nil {
		degrade("updates", err)
		return cx, nil
	}
	cx.Updates = updates
	return cx, nil
}
