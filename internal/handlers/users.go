package handlers

import (
	"net/http"

	"clienthub/internal/models"
	"clienthub/internal/portal"

	"github.com/gin-gonic/gin"
)

type saveUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Phone    string          `json:"phone"`
	Role     models.UserRole `json:"role" binding:"required"`
	IsActive *bool           `json:"isActive"`
	ClientID string          `json:"clientId"`
}

// SaveUser links a subject id (from the identity provider) to a role and
// tenant. The id comes from the URL so re-linking an existing subject is
// the same call as the first link.
func SaveUser(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req saveUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Role != models.RoleAdmin && req.Role != models.RoleClient {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be ADMIN or CLIENT"})
			return
		}
		if req.Role == models.RoleClient && req.ClientID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CLIENT users need a clientId"})
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		err := svc.SaveUser(c.Request.Context(), p, models.User{
			ID:       c.Param("id"),
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Role:     req.Role,
			IsActive: active,
			ClientID: req.ClientID,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func ListUsers(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		users, err := svc.ListUsers(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
	}
}

// DeleteUser revokes access for good. The confirmation step lives in the
// client; this endpoint does not second-guess it.
func DeleteUser(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		if err := svc.DeleteUser(c.Request.Context(), p, c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
