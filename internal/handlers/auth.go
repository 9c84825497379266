package handlers

import (
	"net/http"
	"strings"

	"clienthub/internal/middleware"
	"clienthub/internal/models"
	"clienthub/internal/portal"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks local credentials and binds the subject to the session.
// In deployments with an external identity provider this endpoint is
// bypassed and the session is established upstream.
func Login(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		user, err := svc.UserByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
		if err != nil {
			fail(c, err)
			return
		}
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if err := middleware.SetSubject(c, user.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := middleware.ClearSession(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// Me reports the caller's resolved profile, or the pending state when
// the session subject has no linked record yet.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(middleware.CurrentUserKey)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"state": "pending"})
			return
		}
		user := v.(*models.User)
		c.JSON(http.StatusOK, gin.H{"state": "active", "user": user})
	}
}
