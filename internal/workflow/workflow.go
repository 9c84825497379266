// Package workflow holds the transition allow-lists for the three
// lifecycles. Statuses are closed string enums; a transition not listed
// here is rejected before anything is written.
package workflow

import (
	"fmt"

	"clienthub/internal/models"
)

// InvalidTransitionError reports a rejected status move.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("workflow: %s cannot move %s -> %s", e.Entity, e.From, e.To)
}

// Project lifecycle: forward steps along
// IDEA -> DEVELOPMENT -> TESTING -> PRODUCTION -> MAINTENANCE, PAUSED
// reachable from and back to any non-terminal state, FINISHED reachable
// from anywhere and absorbing.
var projectTransitions = map[models.ProjectStatus][]models.ProjectStatus{
	models.StatusIdea:        {models.StatusDevelopment, models.StatusPaused, models.StatusFinished},
	models.StatusDevelopment: {models.StatusTesting, models.StatusPaused, models.StatusFinished},
	models.StatusTesting:     {models.StatusProduction, models.StatusDevelopment, models.StatusPaused, models.StatusFinished},
	models.StatusProduction:  {models.StatusMaintenance, models.StatusPaused, models.StatusFinished},
	models.StatusMaintenance: {models.StatusProduction, models.StatusPaused, models.StatusFinished},
	models.StatusPaused: {
		models.StatusIdea, models.StatusDevelopment, models.StatusTesting,
		models.StatusProduction, models.StatusMaintenance, models.StatusFinished,
	},
	models.StatusFinished: {},
}

// Ticket lifecycle: OPEN -> REVIEWING -> (APPROVED | REJECTED) -> DONE.
var requestTransitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestOpen:      {models.RequestReviewing},
	models.RequestReviewing: {models.RequestApproved, models.RequestRejected},
	models.RequestApproved:  {models.RequestDone},
	models.RequestRejected:  {models.RequestDone},
	models.RequestDone:      {},
}

// Lead funnel: PROSPECT -> NEGOTIATING -> PROPOSAL_SENT -> (WON | LOST),
// with LOST reachable from any non-terminal stage.
var leadTransitions = map[models.LeadStatus][]models.LeadStatus{
	models.LeadProspect:     {models.LeadNegotiating, models.LeadLost},
	models.LeadNegotiating:  {models.LeadProposalSent, models.LeadLost},
	models.LeadProposalSent: {models.LeadWon, models.LeadLost},
	models.LeadWon:          {},
	models.LeadLost:         {},
}

func CheckProject(from, to models.ProjectStatus) error {
	if !allowed(projectTransitions[from], to) {
		return &InvalidTransitionError{Entity: "project", From: string(from), To: string(to)}
	}
	return nil
}

func CheckRequest(from, to models.RequestStatus) error {
	if !allowed(requestTransitions[from], to) {
		return &InvalidTransitionError{Entity: "request", From: string(from), To: string(to)}
	}
	return nil
}

func CheckLead(from, to models.LeadStatus) error {
	if !allowed(leadTransitions[from], to) {
		return &InvalidTransitionError{Entity: "lead", From: string(from), To: string(to)}
	}
	return nil
}

func ValidProjectStatus(s models.ProjectStatus) bool {
	_, ok := projectTransitions[s]
	return ok
}

func ValidRequestStatus(s models.RequestStatus) bool {
	_, ok := requestTransitions[s]
	return ok
}

func ValidLeadStatus(s models.LeadStatus) bool {
	_, ok := leadTransitions[s]
	return ok
}

func allowed[T comparable](list []T, to T) bool {
	for _, v := range list {
		if v == to {
			return true
		}
	}
	return false
}
