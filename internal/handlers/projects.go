package handlers

import (
	"net/http"

	"clienthub/internal/models"
	"clienthub/internal/portal"
	"clienthub/internal/store"

	"github.com/gin-gonic/gin"
)

type createProjectRequest struct {
	Name                string                    `json:"name" binding:"required"`
	Description         string                    `json:"description"`
	ClientID            string                    `json:"clientId"`
	ProjectType         string                    `json:"projectType"`
	Stack               string                    `json:"stack"`
	ProductionURL       string                    `json:"productionUrl"`
	StagingURL          string                    `json:"stagingUrl"`
	RepositoryURL       string                    `json:"repositoryUrl"`
	FigmaURL            string                    `json:"figmaUrl"`
	DocsURL             string                    `json:"docsUrl"`
	Status              models.ProjectStatus      `json:"status"`
	VisibilityForClient bool                      `json:"visibilityForClient"`
	Lighthouse          *models.LighthouseMetrics `json:"lighthouseMetrics"`
	StartDate           string                    `json:"startDate"`
	ExpectedEndDate     string                    `json:"expectedEndDate"`
}

func CreateProject(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req createProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, err := svc.CreateProject(c.Request.Context(), p, models.Project{
			Name:                req.Name,
			Description:         req.Description,
			Owner:               ownerFrom(req.ClientID),
			ProjectType:         req.ProjectType,
			Stack:               req.Stack,
			ProductionURL:       req.ProductionURL,
			StagingURL:          req.StagingURL,
			RepositoryURL:       req.RepositoryURL,
			FigmaURL:            req.FigmaURL,
			DocsURL:             req.DocsURL,
			Status:              req.Status,
			VisibilityForClient: req.VisibilityForClient,
			Lighthouse:          req.Lighthouse,
			StartDate:           parseDate(req.StartDate),
			ExpectedEndDate:     parseDate(req.ExpectedEndDate),
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func ListProjects(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		includeArchived := c.Query("include_archived") == "true"

		projects, err := svc.ListProjects(c.Request.Context(), p, includeArchived)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": projects, "total": len(projects)})
	}
}

func GetProject(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		pr, err := svc.GetProject(c.Request.Context(), p, c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		if pr == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, pr)
	}
}

type updateProjectRequest struct {
	Name                *string                   `json:"name"`
	Description         *string                   `json:"description"`
	ClientID            *string                   `json:"clientId"`
	ProjectType         *string                   `json:"projectType"`
	Stack               *string                   `json:"stack"`
	ProductionURL       *string                   `json:"productionUrl"`
	StagingURL          *string                   `json:"stagingUrl"`
	RepositoryURL       *string                   `json:"repositoryUrl"`
	FigmaURL            *string                   `json:"figmaUrl"`
	DocsURL             *string                   `json:"docsUrl"`
	VisibilityForClient *bool                     `json:"visibilityForClient"`
	Lighthouse          *models.LighthouseMetrics `json:"lighthouseMetrics"`
	StartDate           *string                   `json:"startDate"`
	ExpectedEndDate     *string                   `json:"expectedEndDate"`
}

func UpdateProject(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req updateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		patch := store.ProjectPatch{
			Name:                req.Name,
			Description:         req.Description,
			ProjectType:         req.ProjectType,
			Stack:               req.Stack,
			ProductionURL:       req.ProductionURL,
			StagingURL:          req.StagingURL,
			RepositoryURL:       req.RepositoryURL,
			FigmaURL:            req.FigmaURL,
			DocsURL:             req.DocsURL,
			VisibilityForClient: req.VisibilityForClient,
			Lighthouse:          req.Lighthouse,
		}
		if req.ClientID != nil {
			owner := ownerFrom(*req.ClientID)
			patch.Owner = &owner
		}
		if req.StartDate != nil {
			patch.StartDate = parseDate(*req.StartDate)
		}
		if req.ExpectedEndDate != nil {
			patch.ExpectedEndDate = parseDate(*req.ExpectedEndDate)
		}

		if err := svc.UpdateProject(c.Request.Context(), p, c.Param("id"), patch); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type projectStatusRequest struct {
	Status models.ProjectStatus `json:"status" binding:"required"`
}

func ChangeProjectStatus(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req projectStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		if err := svc.ChangeProjectStatus(c.Request.Context(), p, c.Param("id"), req.Status); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

func ArchiveProject(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req archiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.ArchiveProject(c.Request.Context(), p, c.Param("id"), req.Archived); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
