package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clienthub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Gorm is the postgres-backed Store.
type Gorm struct {
	db *gorm.DB
}

// Open connects with retries and runs migrations. Container setups bring
// the database up in parallel with the app, hence the retry loop.
func Open(dsn string) (*Gorm, error) {
	var (
		db  *gorm.DB
		err error
	)

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		slog.Info("connecting to database", "attempt", i, "max", maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}

		slog.Warn("database connection failed", "error", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", maxAttempts, err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.ProjectLog{},
		&models.ChangeRequest{},
		&models.AuditLog{},
		&models.Lead{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Gorm{db: db}, nil
}

func (g *Gorm) UpsertUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	existing, err := g.GetUser(ctx, u.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		u.CreatedAt = existing.CreatedAt
		if u.PasswordHash == "" {
			u.PasswordHash = existing.PasswordHash
		}
	} else {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return g.db.WithContext(ctx).Save(u).Error
}

func (g *Gorm) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := g.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (g *Gorm) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := g.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (g *Gorm) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := g.db.WithContext(ctx).Order("created_at desc").Find(&users).Error
	return users, err
}

func (g *Gorm) DeleteUser(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

func (g *Gorm) CreateClient(ctx context.Context, c *models.Client) (string, error) {
	stampNew(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err := g.db.WithContext(ctx).Create(c).Error; err != nil {
		return "", err
	}
	return c.ID, nil
}

func (g *Gorm) UpdateClient(ctx context.Context, id string, p ClientPatch) error {
	return g.update(ctx, &models.Client{}, id, p.changes())
}

func (g *Gorm) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	err := g.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (g *Gorm) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	err := g.db.WithContext(ctx).Order("created_at desc").Find(&clients).Error
	return clients, err
}

func (g *Gorm) CreateProject(ctx context.Context, p *models.Project) (string, error) {
	stampNew(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	p.IsArchived = false
	if err := g.db.WithContext(ctx).Create(p).Error; err != nil {
		return "", err
	}
	return p.ID, nil
}

func (g *Gorm) UpdateProject(ctx context.Context, id string, p ProjectPatch) error {
	return g.update(ctx, &models.Project{}, id, p.changes())
}

func (g *Gorm) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	err := g.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *Gorm) ListProjects(ctx context.Context, includeArchived bool) ([]models.Project, error) {
	dbq := g.db.WithContext(ctx).Order("created_at desc")
	if !includeArchived {
		dbq = dbq.Where("is_archived = ?", false)
	}
	projects := []models.Project{}
	err := dbq.Find(&projects).Error
	return projects, err
}

func (g *Gorm) ListTenantProjects(ctx context.Context, clientID string, visibleOnly bool) ([]models.Project, error) {
	dbq := g.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at desc")
	if visibleOnly {
		dbq = dbq.Where("visibility_for_client = ?", true)
	}
	projects := []models.Project{}
	err := dbq.Find(&projects).Error
	return projects, err
}

func (g *Gorm) CreateLog(ctx context.Context, l *models.ProjectLog) (string, error) {
	if l.ID == "" {
		l.ID = newID()
	}
	l.CreatedAt = time.Now().UTC()
	if err := g.db.WithContext(ctx).Create(l).Error; err != nil {
		return "", err
	}
	return l.ID, nil
}

func (g *Gorm) ListLogs(ctx context.Context, q LogQuery) ([]models.ProjectLog, error) {
	dbq := g.db.WithContext(ctx).Order("created_at desc")
	if q.ProjectID != "" {
		dbq = dbq.Where("project_id = ?", q.ProjectID)
	}
	if q.ProjectIDs != nil {
		dbq = dbq.Where("project_id IN ?", q.ProjectIDs)
	}
	if q.VisibleOnly {
		dbq = dbq.Where("visible_to_client = ?", true)
	}
	if q.Limit > 0 {
		dbq = dbq.Limit(q.Limit)
	}
	logs := []models.ProjectLog{}
	err := dbq.Find(&logs).Error
	return logs, err
}

func (g *Gorm) CreateRequest(ctx context.Context, r *models.ChangeRequest) (string, error) {
	stampNew(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err := g.db.WithContext(ctx).Create(r).Error; err != nil {
		return "", err
	}
	return r.ID, nil
}

func (g *Gorm) UpdateRequest(ctx context.Context, id string, p RequestPatch) error {
	return g.update(ctx, &models.ChangeRequest{}, id, p.changes())
}

func (g *Gorm) GetRequest(ctx context.Context, id string) (*models.ChangeRequest, error) {
	var r models.ChangeRequest
	err := g.db.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (g *Gorm) ListRequests(ctx context.Context, clientID string) ([]models.ChangeRequest, error) {
	dbq := g.db.WithContext(ctx).Order("created_at desc")
	if clientID != "" {
		dbq = dbq.Where("client_id = ?", clientID)
	}
	requests := []models.ChangeRequest{}
	err := dbq.Find(&requests).Error
	return requests, err
}

func (g *Gorm) CreateLead(ctx context.Context, l *models.Lead) (string, error) {
	stampNew(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err := g.db.WithContext(ctx).Create(l).Error; err != nil {
		return "", err
	}
	return l.ID, nil
}

func (g *Gorm) UpdateLead(ctx context.Context, id string, p LeadPatch) error {
	return g.update(ctx, &models.Lead{}, id, p.changes())
}

func (g *Gorm) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	var l models.Lead
	err := g.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (g *Gorm) ListLeads(ctx context.Context) ([]models.Lead, error) {
	leads := []models.Lead{}
	err := g.db.WithContext(ctx).Order("created_at desc").Find(&leads).Error
	return leads, err
}

func (g *Gorm) AppendAudit(ctx context.Context, e *models.AuditLog) error {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return g.db.WithContext(ctx).Create(e).Error
}

func (g *Gorm) ListAudit(ctx context.Context, limit int) ([]models.AuditLog, error) {
	dbq := g.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		dbq = dbq.Limit(limit)
	}
	entries := []models.AuditLog{}
	err := dbq.Find(&entries).Error
	return entries, err
}

func (g *Gorm) update(ctx context.Context, model any, id string, changes map[string]any) error {
	changes["updated_at"] = time.Now().UTC()
	return g.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(changes).Error
}

func stampNew(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = newID()
	}
	now := time.Now().UTC()
	*createdAt = now
	*updatedAt = now
}
