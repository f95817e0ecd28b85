package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fiaisis/fia-auth/internal/httpapi"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, apiKey string) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwt := r.Group("/api/jwt")
	{
		jwt.POST("/authenticate", h.Authenticate)
		jwt.POST("/checkToken", h.CheckToken)
		jwt.POST("/refresh", h.Refresh)
	}

	// internal
	r.GET("/experiments", httpapi.RequireAPIKey(apiKey), h.Experiments)
}
