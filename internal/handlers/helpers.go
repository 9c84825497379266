package handlers

import (
	"errors"
	"net/http"
	"time"

	"clienthub/internal/middleware"
	"clienthub/internal/models"
	"clienthub/internal/portal"
	"clienthub/internal/scope"
	"clienthub/internal/workflow"

	"github.com/gin-gonic/gin"
)

// principal builds the caller's Principal from the resolved user record.
// Writes the response itself when the identity is unprovisioned.
func principal(c *gin.Context) (scope.Principal, bool) {
	var user *models.User
	if v, ok := c.Get(middleware.CurrentUserKey); ok {
		user, _ = v.(*models.User)
	}

	p, err := scope.FromUser(user)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"state": "pending", "error": "account pending activation"})
		return scope.Principal{}, false
	}
	return p, true
}

// fail maps engine errors onto HTTP statuses. Collaborator outages are
// surfaced as 503 so clients can tell "temporarily unavailable" from a
// legitimately empty view.
func fail(c *gin.Context, err error) {
	var invalid *workflow.InvalidTransitionError
	switch {
	case errors.Is(err, portal.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, scope.ErrUnprovisioned):
		c.JSON(http.StatusForbidden, gin.H{"state": "pending", "error": "account pending activation"})
	case errors.Is(err, portal.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, portal.ErrInvalidInput), errors.Is(err, portal.ErrStatusImmutable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusConflict, gin.H{"error": invalid.Error()})
	case errors.Is(err, portal.ErrAssistantUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant temporarily unavailable"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func ownerFrom(clientID string) models.Owner {
	if clientID == "" {
		return models.InternalOwner()
	}
	return models.TenantOwner(clientID)
}
