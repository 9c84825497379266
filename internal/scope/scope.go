// Package scope decides what a caller may see. Every read path goes
// through a Principal built once from the resolved user record; no
// handler re-derives role logic on its own.
package scope

import (
	"errors"

	"clienthub/internal/models"
)

// ErrUnprovisioned marks a valid session with no usable profile behind
// it: no user record, an inactive account, or a CLIENT user without a
// tenant link. Callers surface it as "pending", not as a denial.
var ErrUnprovisioned = errors.New("scope: identity not provisioned")

// Principal is the closed role variant: admin, or client of one tenant.
type Principal struct {
	role     models.UserRole
	tenantID string
	name     string
}

func Admin(name string) Principal {
	return Principal{role: models.RoleAdmin, name: name}
}

func Client(name, tenantID string) Principal {
	return Principal{role: models.RoleClient, tenantID: tenantID, name: name}
}

// FromUser maps a resolved user record to a Principal. A nil record,
// an inactive account, or a CLIENT with no tenant reference is
// unprovisioned.
func FromUser(u *models.User) (Principal, error) {
	if u == nil || !u.IsActive {
		return Principal{}, ErrUnprovisioned
	}
	switch u.Role {
	case models.RoleAdmin:
		return Admin(u.Name), nil
	case models.RoleClient:
		if u.ClientID == "" {
			return Principal{}, ErrUnprovisioned
		}
		return Client(u.Name, u.ClientID), nil
	}
	return Principal{}, ErrUnprovisioned
}

func (p Principal) IsAdmin() bool {
	return p.role == models.RoleAdmin
}

// Tenant returns the caller's tenant id for CLIENT principals.
func (p Principal) Tenant() (string, bool) {
	return p.tenantID, p.role == models.RoleClient && p.tenantID != ""
}

// DisplayName is the acting user's name as recorded in audit entries
// and synthesized logs.
func (p Principal) DisplayName() string {
	return p.name
}

// CanSeeProject: admins see everything; clients see only projects owned
// by their tenant with the client-visibility gate open. Internal
// projects (no owner) never pass for a client.
func (p Principal) CanSeeProject(pr models.Project) bool {
	if p.IsAdmin() {
		return true
	}
	tenant, owned := pr.Owner.Tenant()
	return owned && tenant == p.tenantID && pr.VisibilityForClient
}

// CanSeeLog requires the parent project to be visible and the entry's
// own gate to be open.
func (p Principal) CanSeeLog(l models.ProjectLog, parent models.Project) bool {
	if p.IsAdmin() {
		return true
	}
	return p.CanSeeProject(parent) && l.VisibleToClient
}

// CanSeeRequest: clients see their own tickets regardless of review
// state; there is no visibility gate on tickets.
func (p Principal) CanSeeRequest(r models.ChangeRequest) bool {
	if p.IsAdmin() {
		return true
	}
	return r.ClientID == p.tenantID
}

// CanSeeClient: a client sees only its own tenant record.
func (p Principal) CanSeeClient(c models.Client) bool {
	if p.IsAdmin() {
		return true
	}
	return c.ID == p.tenantID
}

func (p Principal) FilterProjects(projects []models.Project) []models.Project {
	if p.IsAdmin() {
		return projects
	}
	out := []models.Project{}
	for _, pr := range projects {
		if p.CanSeeProject(pr) {
			out = append(out, pr)
		}
	}
	return out
}

func (p Principal) FilterRequests(requests []models.ChangeRequest) []models.ChangeRequest {
	if p.IsAdmin() {
		return requests
	}
	out := []models.ChangeRequest{}
	for _, r := range requests {
		if p.CanSeeRequest(r) {
			out = append(out, r)
		}
	}
	return out
}
