package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"clienthub/internal/models"
)

// Memory is an in-process Store used by tests and local development. It
// mirrors the gorm implementation's contract exactly: same stamping, same
// merge semantics, same ordering.
type Memory struct {
	mu  sync.Mutex
	seq int64

	users    map[string]models.User
	clients  map[string]models.Client
	projects map[string]models.Project
	logs     map[string]models.ProjectLog
	requests map[string]models.ChangeRequest
	leads    map[string]models.Lead
	audit    []models.AuditLog

	// insertion order per id, to keep created-at-desc listings stable when
	// records share a timestamp
	order map[string]int64
}

func NewMemory() *Memory {
	return &Memory{
		users:    map[string]models.User{},
		clients:  map[string]models.Client{},
		projects: map[string]models.Project{},
		logs:     map[string]models.ProjectLog{},
		requests: map[string]models.ChangeRequest{},
		leads:    map[string]models.Lead{},
		order:    map[string]int64{},
	}
}

func (m *Memory) nextSeq(id string) {
	m.seq++
	m.order[id] = m.seq
}

func (m *Memory) UpsertUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := m.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
		if u.PasswordHash == "" {
			u.PasswordHash = existing.PasswordHash
		}
	} else {
		u.CreatedAt = now
		m.nextSeq(u.ID)
	}
	u.UpdatedAt = now
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	m.sortDesc(len(users), func(i int) (time.Time, string) { return users[i].CreatedAt, users[i].ID },
		func(i, j int) { users[i], users[j] = users[j], users[i] })
	return users, nil
}

func (m *Memory) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *Memory) CreateClient(_ context.Context, c *models.Client) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stampNew(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	m.nextSeq(c.ID)
	m.clients[c.ID] = *c
	return c.ID, nil
}

func (m *Memory) UpdateClient(_ context.Context, id string, p ClientPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return nil
	}
	p.Apply(&c)
	c.UpdatedAt = time.Now().UTC()
	m.clients[id] = c
	return nil
}

func (m *Memory) GetClient(_ context.Context, id string) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) ListClients(_ context.Context) ([]models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clients := make([]models.Client, 0, len(m.clients))
	for _, c := range m.clients {
		clients = append(clients, c)
	}
	m.sortDesc(len(clients), func(i int) (time.Time, string) { return clients[i].CreatedAt, clients[i].ID },
		func(i, j int) { clients[i], clients[j] = clients[j], clients[i] })
	return clients, nil
}

func (m *Memory) CreateProject(_ context.Context, p *models.Project) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stampNew(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	p.IsArchived = false
	m.nextSeq(p.ID)
	m.projects[p.ID] = *p
	return p.ID, nil
}

func (m *Memory) UpdateProject(_ context.Context, id string, patch ProjectPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil
	}
	patch.Apply(&p)
	p.UpdatedAt = time.Now().UTC()
	m.projects[id] = p
	return nil
}

func (m *Memory) GetProject(_ context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) ListProjects(_ context.Context, includeArchived bool) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	projects := []models.Project{}
	for _, p := range m.projects {
		if !includeArchived && p.IsArchived {
			continue
		}
		projects = append(projects, p)
	}
	m.sortProjects(projects)
	return projects, nil
}

func (m *Memory) ListTenantProjects(_ context.Context, clientID string, visibleOnly bool) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	projects := []models.Project{}
	for _, p := range m.projects {
		tenant, ok := p.Owner.Tenant()
		if !ok || tenant != clientID {
			continue
		}
		if visibleOnly && !p.VisibilityForClient {
			continue
		}
		projects = append(projects, p)
	}
	m.sortProjects(projects)
	return projects, nil
}

func (m *Memory) CreateLog(_ context.Context, l *models.ProjectLog) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == "" {
		l.ID = newID()
	}
	l.CreatedAt = time.Now().UTC()
	m.nextSeq(l.ID)
	m.logs[l.ID] = *l
	return l.ID, nil
}

func (m *Memory) ListLogs(_ context.Context, q LogQuery) ([]models.ProjectLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	logs := []models.ProjectLog{}
	for _, l := range m.logs {
		if q.ProjectID != "" && l.ProjectID != q.ProjectID {
			continue
		}
		if q.ProjectIDs != nil && !containsStr(q.ProjectIDs, l.ProjectID) {
			continue
		}
		if q.VisibleOnly && !l.VisibleToClient {
			continue
		}
		logs = append(logs, l)
	}
	m.sortDesc(len(logs), func(i int) (time.Time, string) { return logs[i].CreatedAt, logs[i].ID },
		func(i, j int) { logs[i], logs[j] = logs[j], logs[i] })
	if q.Limit > 0 && len(logs) > q.Limit {
		logs = logs[:q.Limit]
	}
	return logs, nil
}

func (m *Memory) CreateRequest(_ context.Context, r *models.ChangeRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stampNew(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	m.nextSeq(r.ID)
	m.requests[r.ID] = *r
	return r.ID, nil
}

func (m *Memory) UpdateRequest(_ context.Context, id string, p RequestPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil
	}
	p.Apply(&r)
	r.UpdatedAt = time.Now().UTC()
	m.requests[id] = r
	return nil
}

func (m *Memory) GetRequest(_ context.Context, id string) (*models.ChangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) ListRequests(_ context.Context, clientID string) ([]models.ChangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := []models.ChangeRequest{}
	for _, r := range m.requests {
		if clientID != "" && r.ClientID != clientID {
			continue
		}
		requests = append(requests, r)
	}
	m.sortDesc(len(requests), func(i int) (time.Time, string) { return requests[i].CreatedAt, requests[i].ID },
		func(i, j int) { requests[i], requests[j] = requests[j], requests[i] })
	return requests, nil
}

func (m *Memory) CreateLead(_ context.Context, l *models.Lead) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stampNew(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	m.nextSeq(l.ID)
	m.leads[l.ID] = *l
	return l.ID, nil
}

func (m *Memory) UpdateLead(_ context.Context, id string, p LeadPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return nil
	}
	p.Apply(&l)
	l.UpdatedAt = time.Now().UTC()
	m.leads[id] = l
	return nil
}

func (m *Memory) GetLead(_ context.Context, id string) (*models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (m *Memory) ListLeads(_ context.Context) ([]models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	leads := make([]models.Lead, 0, len(m.leads))
	for _, l := range m.leads {
		leads = append(leads, l)
	}
	m.sortDesc(len(leads), func(i int) (time.Time, string) { return leads[i].CreatedAt, leads[i].ID },
		func(i, j int) { leads[i], leads[j] = leads[j], leads[i] })
	return leads, nil
}

func (m *Memory) AppendAudit(_ context.Context, e *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m.audit = append(m.audit, *e)
	return nil
}

func (m *Memory) ListAudit(_ context.Context, limit int) ([]models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]models.AuditLog, len(m.audit))
	copy(entries, m.audit)
	// append order is creation order; reverse for newest-first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *Memory) sortProjects(projects []models.Project) {
	m.sortDesc(len(projects), func(i int) (time.Time, string) { return projects[i].CreatedAt, projects[i].ID },
		func(i, j int) { projects[i], projects[j] = projects[j], projects[i] })
}

// sortDesc orders newest-first, falling back to insertion order for equal
// timestamps so tests that create records back to back stay deterministic.
func (m *Memory) sortDesc(n int, key func(int) (time.Time, string), swap func(int, int)) {
	sort.Sort(&descSorter{n: n, key: key, swapFn: swap, order: m.order})
}

type descSorter struct {
	n      int
	key    func(int) (time.Time, string)
	swapFn func(int, int)
	order  map[string]int64
}

func (s *descSorter) Len() int      { return s.n }
func (s *descSorter) Swap(i, j int) { s.swapFn(i, j) }

func (s *descSorter) Less(i, j int) bool {
	ti, idi := s.key(i)
	tj, idj := s.key(j)
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return s.order[idi] > s.order[idj]
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
