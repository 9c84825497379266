package handlers

import (
	"net/http"

	"clienthub/internal/portal"

	"github.com/gin-gonic/gin"
)

type askRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Ask routes the prompt to the persona matching the caller's role. The
// conversation history, if any, lives in the client; each call here is
// single-shot over a fresh scoped snapshot.
func Ask(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
			return
		}

		var (
			answer string
			err    error
		)
		if p.IsAdmin() {
			answer, err = svc.AskAdmin(c.Request.Context(), p, req.Prompt)
		} else {
			answer, err = svc.AskClient(c.Request.Context(), p, req.Prompt)
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"answer": answer})
	}
}

// Overview returns the role-scoped snapshot used by the dashboards.
// Sections that could not be fetched are listed under "unavailable" so
// the UI can show an outage instead of a misleading empty state.
func Overview(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		if p.IsAdmin() {
			cx, err := svc.AdminSnapshot(c.Request.Context(), p, c.Query("include_archived") == "true")
			if err != nil {
				fail(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"context": cx, "unavailable": cx.Unavailable})
			return
		}

		cx, err := svc.ClientSnapshot(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"context": cx, "unavailable": cx.Unavailable})
	}
}
