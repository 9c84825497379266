package handlers

import (
	"net/http"
	"strconv"

	"clienthub/internal/portal"

	"github.com/gin-gonic/gin"
)

func ListAuditLogs(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		limit, _ := strconv.Atoi(c.Query("limit"))

		entries, err := svc.ListAudit(c.Request.Context(), p, limit)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
	}
}
