package handlers

import (
	"net/http"

	"clienthub/internal/models"
	"clienthub/internal/portal"

	"github.com/gin-gonic/gin"
)

type createRequestRequest struct {
	ProjectID   string             `json:"projectId" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Type        models.RequestType `json:"type" binding:"required"`
}

func CreateRequest(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req createRequestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, err := svc.CreateRequest(c.Request.Context(), p, models.ChangeRequest{
			ProjectID:   req.ProjectID,
			Title:       req.Title,
			Description: req.Description,
			Type:        req.Type,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func ListRequests(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		requests, err := svc.ListRequests(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"requests": requests, "total": len(requests)})
	}
}

func GetRequest(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		r, err := svc.GetRequest(c.Request.Context(), p, c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		if r == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, r)
	}
}

type transitionRequestRequest struct {
	Status  models.RequestStatus `json:"status" binding:"required"`
	Comment string               `json:"comment"`
}

// TransitionRequest carries the admin's response comment alongside the
// status; an empty comment still overwrites the stored one.
func TransitionRequest(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req transitionRequestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		err := svc.TransitionRequest(c.Request.Context(), p, c.Param("id"), req.Status, req.Comment)
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
