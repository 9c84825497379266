package handlers

import (
	"net/http"

	"clienthub/internal/models"
	"clienthub/internal/portal"

	"github.com/gin-gonic/gin"
)

type addLogRequest struct {
	ProjectID       string         `json:"projectId" binding:"required"`
	LogType         models.LogType `json:"logType" binding:"required"`
	Title           string         `json:"title" binding:"required"`
	Description     string         `json:"description"`
	VisibleToClient bool           `json:"visibleToClient"`
}

func AddLog(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req addLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch req.LogType {
		case models.LogUpdate, models.LogIssue, models.LogMilestone, models.LogNote:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown log type"})
			return
		}

		id, err := svc.AddLog(c.Request.Context(), p, models.ProjectLog{
			ProjectID:       req.ProjectID,
			LogType:         req.LogType,
			Title:           req.Title,
			Description:     req.Description,
			VisibleToClient: req.VisibleToClient,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func ListLogs(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		logs, err := svc.ListLogs(c.Request.Context(), p, c.Query("project_id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs, "total": len(logs)})
	}
}
