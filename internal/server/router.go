package server

import (
	"net/http"

	"clienthub/internal/config"
	"clienthub/internal/handlers"
	"clienthub/internal/middleware"
	"clienthub/internal/portal"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, svc *portal.Service) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("hub_session", store))
	r.Use(middleware.ResolveUser(svc))

	// AUTH
	r.POST("/login", handlers.Login(svc))
	r.POST("/logout", handlers.Logout())

	api := r.Group("/api")
	api.Use(middleware.RequireAuth())

	api.GET("/me", handlers.Me())
	api.GET("/overview", handlers.Overview(svc))

	// PROJECTS
	api.GET("/projects", handlers.ListProjects(svc))
	api.POST("/projects", handlers.CreateProject(svc))
	api.GET("/projects/:id", handlers.GetProject(svc))
	api.PATCH("/projects/:id", handlers.UpdateProject(svc))
	api.POST("/projects/:id/status", handlers.ChangeProjectStatus(svc))
	api.POST("/projects/:id/archive", handlers.ArchiveProject(svc))

	// PROJECT LOGS
	api.GET("/logs", handlers.ListLogs(svc))
	api.POST("/logs", handlers.AddLog(svc))

	// CLIENTS
	api.GET("/clients", handlers.ListClients(svc))
	api.POST("/clients", handlers.CreateClient(svc))
	api.GET("/clients/:id", handlers.GetClient(svc))
	api.PATCH("/clients/:id", handlers.UpdateClient(svc))

	// USERS
	api.GET("/users", handlers.ListUsers(svc))
	api.PUT("/users/:id", handlers.SaveUser(svc))
	api.DELETE("/users/:id", handlers.DeleteUser(svc))

	// CHANGE REQUESTS
	api.GET("/requests", handlers.ListRequests(svc))
	api.POST("/requests", handlers.CreateRequest(svc))
	api.GET("/requests/:id", handlers.GetRequest(svc))
	api.POST("/requests/:id/status", handlers.TransitionRequest(svc))

	// LEADS
	api.GET("/leads", handlers.ListLeads(svc))
	api.POST("/leads", handlers.CreateLead(svc))
	api.PATCH("/leads/:id", handlers.UpdateLead(svc))

	// AUDIT
	api.GET("/audit", handlers.ListAuditLogs(svc))

	// ASSISTANT
	api.POST("/assistant", handlers.Ask(svc))

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
