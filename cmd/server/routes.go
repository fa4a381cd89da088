package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"keymint.backend/internal/interfaces/http/handlers"
	"keymint.backend/pkg/metrics"
)

type routeDeps struct {
	apiKeyHandler  *handlers.ApiKeyHandler
	authHandler    *handlers.AuthHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// Key lifecycle (public)
	r.POST("/create", d.apiKeyHandler.CreateKey)
	r.POST("/users", d.apiKeyHandler.BindUser)
	r.POST("/checkapi", d.apiKeyHandler.ValidateKey)
	r.GET("/keys", d.apiKeyHandler.ListKeys)

	// Admin
	admin := r.Group("/admin")
	{
		admin.POST("/register", d.authHandler.Register)
		admin.POST("/login", d.authHandler.Login)
		admin.GET("/users", d.authMiddleware, d.adminHandler.ListUsers)
	}
}
