package handlers

import (
	"net/http"

	"clienthub/internal/models"
	"clienthub/internal/portal"
	"clienthub/internal/store"

	"github.com/gin-gonic/gin"
)

type createLeadRequest struct {
	Name           string            `json:"name" binding:"required"`
	Company        string            `json:"company"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Status         models.LeadStatus `json:"status"`
	EstimatedValue float64           `json:"estimatedValue"`
	Notes          string            `json:"notes"`
}

func CreateLead(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req createLeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, err := svc.CreateLead(c.Request.Context(), p, models.Lead{
			Name:           req.Name,
			Company:        req.Company,
			Email:          req.Email,
			Phone:          req.Phone,
			Status:         req.Status,
			EstimatedValue: req.EstimatedValue,
			Notes:          req.Notes,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func ListLeads(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		leads, err := svc.ListLeads(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"leads": leads, "total": len(leads)})
	}
}

type updateLeadRequest struct {
	Name           *string            `json:"name"`
	Company        *string            `json:"company"`
	Email          *string            `json:"email"`
	Phone          *string            `json:"phone"`
	Status         *models.LeadStatus `json:"status"`
	EstimatedValue *float64           `json:"estimatedValue"`
	Notes          *string            `json:"notes"`
}

func UpdateLead(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req updateLeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := svc.UpdateLead(c.Request.Context(), p, c.Param("id"), store.LeadPatch{
			Name:           req.Name,
			Company:        req.Company,
			Email:          req.Email,
			Phone:          req.Phone,
			Status:         req.Status,
			EstimatedValue: req.EstimatedValue,
			Notes:          req.Notes,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
