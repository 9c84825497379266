package handlers

import (
	"net/http"

	"clienthub/internal/models"
	"clienthub/internal/portal"
	"clienthub/internal/store"

	"github.com/gin-gonic/gin"
)

type createClientRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
	VIP         bool   `json:"vip"`
}

func CreateClient(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req createClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, err := svc.CreateClient(c.Request.Context(), p, models.Client{
			CompanyName: req.CompanyName,
			ContactName: req.ContactName,
			Email:       req.Email,
			Phone:       req.Phone,
			Notes:       req.Notes,
			VIP:         req.VIP,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func ListClients(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		clients, err := svc.ListClients(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"clients": clients, "total": len(clients)})
	}
}

func GetClient(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		client, err := svc.GetClient(c.Request.Context(), p, c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		if client == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, client)
	}
}

type updateClientRequest struct {
	CompanyName *string `json:"companyName"`
	ContactName *string `json:"contactName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Notes       *string `json:"notes"`
	VIP         *bool   `json:"vip"`
}

func UpdateClient(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req updateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := svc.UpdateClient(c.Request.Context(), p, c.Param("id"), store.ClientPatch{
			CompanyName: req.CompanyName,
			ContactName: req.ContactName,
			Email:       req.Email,
			Phone:       req.Phone,
			Notes:       req.Notes,
			VIP:         req.VIP,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
