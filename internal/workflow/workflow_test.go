package workflow

import (
	"testing"

	"clienthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckProject(t *testing.T) {
	ok := [][2]models.ProjectStatus{
		{models.StatusIdea, models.StatusDevelopment},
		{models.StatusDevelopment, models.StatusTesting},
		{models.StatusTesting, models.StatusProduction},
		{models.StatusTesting, models.StatusDevelopment},
		{models.StatusProduction, models.StatusMaintenance},
		{models.StatusMaintenance, models.StatusProduction},
		{models.StatusIdea, models.StatusPaused},
		{models.StatusPaused, models.StatusTesting},
		{models.StatusIdea, models.StatusFinished},
		{models.StatusMaintenance, models.StatusFinished},
	}
	for _, tr := range ok {
		assert.NoError(t, CheckProject(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	bad := [][2]models.ProjectStatus{
		{models.StatusIdea, models.StatusTesting},
		{models.StatusIdea, models.StatusProduction},
		{models.StatusDevelopment, models.StatusIdea},
		{models.StatusProduction, models.StatusTesting},
		{models.StatusFinished, models.StatusIdea},
		{models.StatusFinished, models.StatusPaused},
		{models.StatusIdea, models.StatusIdea},
	}
	for _, tr := range bad {
		err := CheckProject(tr[0], tr[1])
		require.Error(t, err, "%s -> %s", tr[0], tr[1])
		var ite *InvalidTransitionError
		require.ErrorAs(t, err, &ite)
		assert.Equal(t, "project", ite.Entity)
		assert.Equal(t, string(tr[0]), ite.From)
		assert.Equal(t, string(tr[1]), ite.To)
	}
}

func TestCheckRequest(t *testing.T) {
	assert.NoError(t, CheckRequest(models.RequestOpen, models.RequestReviewing))
	assert.NoError(t, CheckRequest(models.RequestReviewing, models.RequestApproved))
	assert.NoError(t, CheckRequest(models.RequestReviewing, models.RequestRejected))
	assert.NoError(t, CheckRequest(models.RequestApproved, models.RequestDone))
	assert.NoError(t, CheckRequest(models.RequestRejected, models.RequestDone))

	assert.Error(t, CheckRequest(models.RequestOpen, models.RequestApproved), "no skipping review")
	assert.Error(t, CheckRequest(models.RequestOpen, models.RequestDone))
	assert.Error(t, CheckRequest(models.RequestReviewing, models.RequestOpen), "no going back")
	assert.Error(t, CheckRequest(models.RequestDone, models.RequestReviewing), "DONE is terminal")
	assert.Error(t, CheckRequest(models.RequestApproved, models.RequestRejected))
}

func TestCheckLead(t *testing.T) {
	assert.NoError(t, CheckLead(models.LeadProspect, models.LeadNegotiating))
	assert.NoError(t, CheckLead(models.LeadNegotiating, models.LeadProposalSent))
	assert.NoError(t, CheckLead(models.LeadProposalSent, models.LeadWon))
	assert.NoError(t, CheckLead(models.LeadProspect, models.LeadLost))
	assert.NoError(t, CheckLead(models.LeadNegotiating, models.LeadLost))
	assert.NoError(t, CheckLead(models.LeadProposalSent, models.LeadLost))

	assert.Error(t, CheckLead(models.LeadProspect, models.LeadWon), "no skipping the funnel")
	assert.Error(t, CheckLead(models.LeadWon, models.LeadLost), "WON is terminal")
	assert.Error(t, CheckLead(models.LeadLost, models.LeadProspect), "LOST is terminal")
}

func TestValidStatuses(t *testing.T) {
	assert.True(t, ValidProjectStatus(models.StatusPaused))
	assert.False(t, ValidProjectStatus("ARCHIVED"))
	assert.True(t, ValidRequestStatus(models.RequestDone))
	assert.False(t, ValidRequestStatus("CLOSED"))
	assert.True(t, ValidLeadStatus(models.LeadWon))
	assert.False(t, ValidLeadStatus("COLD"))
}
