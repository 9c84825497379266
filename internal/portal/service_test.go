package portal

import (
	"context"
	"testing"

	"clienthub/internal/audit"
	"clienthub/internal/models"
	"clienthub/internal/scope"
	"clienthub/internal/store"
	"clienthub/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *store.Memory, *audit.Recorder) {
	t.Helper()
	mem := store.NewMemory()
	rec := audit.NewRecorder(mem, nil)
	return NewService(mem, rec, nil, nil), mem, rec
}

// auditActions drains the recorder and returns the recorded actions,
// oldest first.
func auditActions(t *testing.T, mem *store.Memory, rec *audit.Recorder) []models.AuditLog {
	t.Helper()
	rec.Close()
	entries, err := mem.ListAudit(context.Background(), 0)
	require.NoError(t, err)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func TestSaveUser(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newTestService(t)
	admin := scope.Admin("Root")

	err := svc.SaveUser(ctx, scope.Client("Ana", "c1"), models.User{ID: "sub-1"})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = svc.SaveUser(ctx, admin, models.User{Email: "x@y.z"})
	assert.ErrorIs(t, err, ErrNotFound, "subject id is caller-supplied, never generated")

	u := models.User{ID: "sub-1", Name: "Ana", Email: "ana@acme.io", Role: models.RoleClient, IsActive: true, ClientID: "c1"}
	require.NoError(t, svc.SaveUser(ctx, admin, u))

	got, err := svc.UserBySubject(ctx, "sub-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RoleClient, got.Role)

	entries := auditActions(t, mem, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "SAVE_USER", entries[0].Action)
	assert.Equal(t, models.EntityUser, entries[0].EntityType)
	assert.Equal(t, "sub-1", entries[0].EntityID)
	assert.Equal(t, "Root", entries[0].UserName)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newTestService(t)
	admin := scope.Admin("Root")

	require.NoError(t, svc.SaveUser(ctx, admin, models.User{ID: "sub-1", Email: "a@b.c"}))
	require.NoError(t, svc.DeleteUser(ctx, admin, "sub-1"))

	got, err := svc.UserBySubject(ctx, "sub-1")
	require.NoError(t, err)
	assert.Nil(t, got, "deleted subject is back to pending")

	entries := auditActions(t, mem, rec)
	require.Len(t, entries, 2)
	assert.Equal(t, "DELETE_USER", entries[1].Action)
	assert.Equal(t, "access revoked", entries[1].Details)

	assert.ErrorIs(t, svc.DeleteUser(ctx, scope.Client("Ana", "c1"), "sub-1"), ErrNotAuthorized)
}

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newTestService(t)
	admin := scope.Admin("Root")

	_, err := svc.CreateProject(ctx, scope.Client("Ana", "c1"), models.Project{Name: "x"})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = svc.CreateProject(ctx, admin, models.Project{Name: "x", Status: "LAUNCHED"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	id, err := svc.CreateProject(ctx, admin, models.Project{
		Name: "Portal", Owner: models.TenantOwner("c1"), VisibilityForClient: true,
	})
	require.NoError(t, err)

	pr, err := mem.GetProject(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, models.StatusIdea, pr.Status, "omitted status defaults to IDEA")
	assert.False(t, pr.IsArchived)

	logs, err := mem.ListLogs(ctx, store.LogQuery{ProjectID: id})
	require.NoError(t, err)
	require.Len(t, logs, 1, "creation synthesizes the initial milestone")
	assert.Equal(t, models.LogMilestone, logs[0].LogType)
	assert.Equal(t, "Project created", logs[0].Title)
	assert.Contains(t, logs[0].Description, "IDEA")
	assert.True(t, logs[0].VisibleToClient, "log gate follows the project gate")
	assert.Equal(t, "Root", logs[0].CreatedBy)

	entries := auditActions(t, mem, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "CREATE_PROJECT", entries[0].Action)
	assert.Equal(t, id, entries[0].EntityID)
}

func TestCreateHiddenProjectLog(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newTestService(t)

	id, err := svc.CreateProject(ctx, scope.Admin("Root"), models.Project{
		Name: "Internal tool", Owner: models.InternalOwner(),
	})
	require.NoError(t, err)

	logs, err := mem.ListLogs(ctx, store.LogQuery{ProjectID: id})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].VisibleToClient, "closed project gate keeps the milestone hidden")
}

func TestUpdateProjectStatusImmutable(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	admin := scope.Admin("Root")

	id, err := svc.CreateProject(ctx, admin, models.Project{Name: "Portal"})
	require.NoError(t, err)

	status := models.StatusDevelopment
	err = svc.UpdateProject(ctx, admin, id, store.ProjectPatch{Status: &status})
	assert.ErrorIs(t, err, ErrStatusImmutable)

	desc := "reworked"
	require.NoError(t, svc.UpdateProject(ctx, admin, id, store.ProjectPatch{Description: &desc}))
	pr, err := svc.GetProject(ctx, admin, id)
	require.NoError(t, err)
	assert.Equal(t, "reworked", pr.Description)
	assert.Equal(t, models.StatusIdea, pr.Status)
}

func TestChangeProjectStatus(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newTestService(t)
	admin := scope.Admin("Root")

	id, err := svc.CreateProject(ctx, admin, models.Project{
		Name: "Portal", Owner: models.TenantOwner("c1"), VisibilityForClient: true,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangeProjectStatus(ctx, admin, "nope", models.StatusDevelopment), ErrNotFound)
	assert.ErrorIs(t, svc.ChangeProjectStatus(ctx, scope.Client("Ana", "c1"), id, models.StatusDevelopment), ErrNotAuthorized)

	var ite *workflow.InvalidTransitionError
	err = svc.ChangeProjectStatus(ctx, admin, id, models.StatusProduction)
	require.ErrorAs(t, err, &ite, "IDEA cannot jump straight to PRODUCTION")

	logs, err := mem.ListLogs(ctx, store.LogQuery{ProjectID: id})
	require.NoError(t, err)
	assert.Len(t, logs, 1, "rejected transition synthesizes nothing")

	require.NoError(t, svc.ChangeProjectStatus(ctx, admin, id, models.StatusDevelopment))

	pr, err := mem.GetProject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDevelopment, pr.Status)

	logs, err = mem.ListLogs(ctx, store.LogQuery{ProjectID: id})
	require.NoError(t, err)
	require.Len(t, logs, 2, "exactly one log per applied transition")
	assert.Equal(t, models.LogUpdate, logs[0].LogType)
	assert.Equal(t, "Status change", logs[0].Title)
	assert.Contains(t, logs[0].Description, "IDEA")
	assert.Contains(t, logs[0].Description, "DEVELOPMENT")
	assert.True(t, logs[0].VisibleToClient)

	entries := auditActions(t, mem, rec)
	last := entries[len(entries)-1]
	assert.Equal(t, "UPDATE_STATUS", last.Action)
	assert.Equal(t, "DEVELOPMENT", last.Details)
}

func TestArchiveProject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	admin := scope.Admin("Root")

	id, err := svc.CreateProject(ctx, admin, models.Project{Name: "Old"})
	require.NoError(t, err)
	require.NoError(t, svc.ArchiveProject(ctx, admin, id, true))

	active, err := svc.ListProjects(ctx, admin, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListProjects(ctx, admin, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsArchived)

	require.NoError(t, svc.ArchiveProject(ctx, admin, id, false))
	active, err = svc.ListProjects(ctx, admin, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

// seedTwoTenants builds the canonical isolation fixture: tenant c1 with
// one visible and one hidden project, one internal project, tenant c2
// with its own visible project, plus gated and open log entries.
func seedTwoTenants(t *testing.T, svc *Service) (visibleID, hiddenID, internalID, foreignID string) {
	t.Helper()
	ctx := context.Background()
	admin := scope.Admin("Root")

	var err error
	visibleID, err = svc.CreateProject(ctx, admin, models.Project{
		Name: "Acme portal", Owner: models.TenantOwner("c1"), VisibilityForClient: true,
	})
	require.NoError(t, err)
	hiddenID, err = svc.CreateProject(ctx, admin, models.Project{
		Name: "Acme rework", Owner: models.TenantOwner("c1"),
	})
	require.NoError(t, err)
	internalID, err = svc.CreateProject(ctx, admin, models.Project{
		Name: "Studio site", Owner: models.InternalOwner(), VisibilityForClient: true,
	})
	require.NoError(t, err)
	foreignID, err = svc.CreateProject(ctx, admin, models.Project{
		Name: "Globex app", Owner: models.TenantOwner("c2"), VisibilityForClient: true,
	})
	require.NoError(t, err)

	_, err = svc.AddLog(ctx, admin, models.ProjectLog{
		ProjectID: visibleID, LogType: models.LogUpdate, Title: "sprint done", VisibleToClient: true,
	})
	require.NoError(t, err)
	_, err = svc.AddLog(ctx, admin, models.ProjectLog{
		ProjectID: visibleID, LogType: models.LogIssue, Title: "internal incident", VisibleToClient: false,
	})
	require.NoError(t, err)
	_, err = svc.AddLog(ctx, admin, models.ProjectLog{
		ProjectID: foreignID, LogType: models.LogUpdate, Title: "globex news", VisibleToClient: true,
	})
	require.NoError(t, err)
	return
}

func TestTenantIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	visibleID, hiddenID, internalID, foreignID := seedTwoTenants(t, svc)
	client := scope.Client("Ana", "c1")

	projects, err := svc.ListProjects(ctx, client, true)
	require.NoError(t, err)
	require.Len(t, projects, 1, "only the tenant's visible project")
	assert.Equal(t, visibleID, projects[0].ID)

	for _, id := range []string{hiddenID, internalID, foreignID} {
		pr, err := svc.GetProject(ctx, client, id)
		require.NoError(t, err)
		assert.Nil(t, pr, "out-of-scope ids read as absent")
	}

	logs, err := svc.ListLogs(ctx, client, "")
	require.NoError(t, err)
	// every project carries its synthesized milestone; for c1 only the
	// visible project's open-gated entries come through
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, visibleID, l.ProjectID)
		assert.True(t, l.VisibleToClient)
	}

	logs, err = svc.ListLogs(ctx, client, foreignID)
	require.NoError(t, err)
	assert.Empty(t, logs, "foreign project reads as an empty timeline")

	logs, err = svc.ListLogs(ctx, scope.Admin("Root"), visibleID)
	require.NoError(t, err)
	assert.Len(t, logs, 3, "admin sees gated entries too")
}

func TestListLogsEmptyTenant(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	seedTwoTenants(t, svc)

	logs, err := svc.ListLogs(ctx, scope.Client("Zed", "c9"), "")
	require.NoError(t, err)
	assert.Empty(t, logs, "a tenant with no visible projects gets an empty feed, not everyone's logs")
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newTestService(t)
	visibleID, hiddenID, _, _ := seedTwoTenants(t, svc)
	client := scope.Client("Ana", "c1")

	_, err := svc.CreateRequest(ctx, scope.Admin("Root"), models.ChangeRequest{ProjectID: visibleID, Type: models.RequestBug})
	assert.ErrorIs(t, err, ErrNotAuthorized, "ticket creation is client-initiated only")

	_, err = svc.CreateRequest(ctx, client, models.ChangeRequest{ProjectID: visibleID, Type: "WISH"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateRequest(ctx, client, models.ChangeRequest{ProjectID: hiddenID, Type: models.RequestBug})
	assert.ErrorIs(t, err, ErrNotAuthorized, "no tickets against projects outside scope")

	id, err := svc.CreateRequest(ctx, client, models.ChangeRequest{
		ProjectID:    visibleID,
		ClientID:     "c2",
		Title:        "fix login",
		Type:         models.RequestBug,
		Status:       models.RequestDone,
		AdminComment: "smuggled",
	})
	require.NoError(t, err)

	r, err := mem.GetRequest(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, models.RequestOpen, r.Status, "tickets always open in OPEN")
	assert.Equal(t, "c1", r.ClientID, "tenant comes from the caller, not the payload")
	assert.Equal(t, "", r.AdminComment)

	entries := auditActions(t, mem, rec)
	last := entries[len(entries)-1]
	assert.Equal(t, "CREATE_REQUEST", last.Action)
	assert.Equal(t, "Ana", last.UserName)
}

func TestTransitionRequest(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newTestService(t)
	visibleID, _, _, _ := seedTwoTenants(t, svc)
	client := scope.Client("Ana", "c1")
	admin := scope.Admin("Root")

	id, err := svc.CreateRequest(ctx, client, models.ChangeRequest{
		ProjectID: visibleID, Title: "fix login", Type: models.RequestBug,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.TransitionRequest(ctx, client, id, models.RequestReviewing, ""), ErrNotAuthorized)
	assert.ErrorIs(t, svc.TransitionRequest(ctx, admin, "nope", models.RequestReviewing, ""), ErrNotFound)

	var ite *workflow.InvalidTransitionError
	err = svc.TransitionRequest(ctx, admin, id, models.RequestDone, "")
	require.ErrorAs(t, err, &ite)

	require.NoError(t, svc.TransitionRequest(ctx, admin, id, models.RequestReviewing, "looking into it"))
	r, err := mem.GetRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestReviewing, r.Status)
	assert.Equal(t, "looking into it", r.AdminComment)

	// the comment always overwrites, empty string included
	require.NoError(t, svc.TransitionRequest(ctx, admin, id, models.RequestApproved, ""))
	r, err = mem.GetRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, r.Status)
	assert.Equal(t, "", r.AdminComment)

	entries := auditActions(t, mem, rec)
	last := entries[len(entries)-1]
	assert.Equal(t, "UPDATE_REQUEST", last.Action)
	assert.Equal(t, "APPROVED", last.Details)
}

func TestRequestReads(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	visibleID, _, _, foreignID := seedTwoTenants(t, svc)

	mine, err := svc.CreateRequest(ctx, scope.Client("Ana", "c1"), models.ChangeRequest{
		ProjectID: visibleID, Title: "a", Type: models.RequestBug,
	})
	require.NoError(t, err)
	theirs, err := svc.CreateRequest(ctx, scope.Client("Bob", "c2"), models.ChangeRequest{
		ProjectID: foreignID, Title: "b", Type: models.RequestImprovement,
	})
	require.NoError(t, err)

	list, err := svc.ListRequests(ctx, scope.Client("Ana", "c1"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine, list[0].ID)

	got, err := svc.GetRequest(ctx, scope.Client("Ana", "c1"), theirs)
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := svc.ListRequests(ctx, scope.Admin("Root"))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLeads(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newTestService(t)
	admin := scope.Admin("Root")
	client := scope.Client("Ana", "c1")

	_, err := svc.CreateLead(ctx, client, models.Lead{Name: "Carol"})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	_, err = svc.ListLeads(ctx, client)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	id, err := svc.CreateLead(ctx, admin, models.Lead{Name: "Carol", Company: "Initech"})
	require.NoError(t, err)

	l, err := svc.ListLeads(ctx, admin)
	require.NoError(t, err)
	require.Len(t, l, 1)
	assert.Equal(t, models.LeadProspect, l[0].Status, "omitted status defaults to PROSPECT")

	lost := models.LeadLost
	require.NoError(t, svc.UpdateLead(ctx, admin, id, store.LeadPatch{Status: &lost}))

	won := models.LeadWon
	var ite *workflow.InvalidTransitionError
	err = svc.UpdateLead(ctx, admin, id, store.LeadPatch{Status: &won})
	require.ErrorAs(t, err, &ite, "LOST is terminal")

	err = svc.UpdateLead(ctx, admin, "nope", store.LeadPatch{Status: &won})
	assert.ErrorIs(t, err, ErrNotFound)

	notes := "met at conf"
	require.NoError(t, svc.UpdateLead(ctx, admin, "nope", store.LeadPatch{Notes: &notes}),
		"non-status merges skip the funnel check")

	entries := auditActions(t, mem, rec)
	assert.Equal(t, "CREATE_LEAD", entries[0].Action)
	assert.Contains(t, entries[0].Details, "Initech")
}

func TestListAudit(t *testing.T) {
	ctx := context.Background()
	svc, mem, rec := newTestService(t)
	admin := scope.Admin("Root")

	_, err := svc.ListAudit(ctx, scope.Client("Ana", "c1"), 0)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	for i := 0; i < 60; i++ {
		require.NoError(t, mem.AppendAudit(ctx, &models.AuditLog{Action: "CREATE_CLIENT"}))
	}
	rec.Close()

	entries, err := svc.ListAudit(ctx, admin, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 50, "default view bound")

	entries, err = svc.ListAudit(ctx, admin, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestMutationSurvivesAuditOutage(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	rec := audit.NewRecorder(brokenAuditStore{}, nil)
	defer rec.Close()
	svc := NewService(mem, rec, nil, nil)
	admin := scope.Admin("Root")

	id, err := svc.CreateClient(ctx, admin, models.Client{CompanyName: "Acme"})
	require.NoError(t, err, "audit sink failure never fails the primary write")

	c, err := svc.GetClient(ctx, admin, id)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Acme", c.CompanyName)
}
