package middleware

import (
	"net/http"

	"clienthub/internal/portal"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionSubjectKey = "subject"

// CurrentUserKey holds the resolved *models.User for the request, when
// the session subject maps to a provisioned record.
const CurrentUserKey = "CurrentUser"

// RequireAuth rejects requests without an authenticated session. Whether
// the subject resolves to a user record is a separate question answered
// per handler.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if sess.Get(sessionSubjectKey) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// ResolveUser looks up the session subject's user record and stashes it
// in the request context. A subject with no record passes through with
// nothing set: that is the pending-activation state, not a failure.
func ResolveUser(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		subject, ok := sess.Get(sessionSubjectKey).(string)
		if ok && subject != "" {
			if user, err := svc.UserBySubject(c.Request.Context(), subject); err == nil && user != nil {
				c.Set(CurrentUserKey, user)
			}
		}
		c.Next()
	}
}

// SetSubject stores the authenticated subject id on the session.
func SetSubject(c *gin.Context, subject string) error {
	sess := sessions.Default(c)
	sess.Set(sessionSubjectKey, subject)
	return sess.Save()
}

// ClearSession drops the authenticated session.
func ClearSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}
