package handlers

import (
	"net/http"

	"github.com/farellandr/travel-maker/config"
	"github.com/farellandr/travel-maker/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Travel Maker API",
		"version": config.Version,
	})
}

// HealthCheck reports degraded instead of failing when the database is down.
func HealthCheck(c *gin.Context) {
	status, dbStatus := "healthy", "connected"

	gormDB := middleware.GetDB(c)
	if gormDB == nil || config.Ping(c.Request.Context(), gormDB) != nil {
		status, dbStatus = "degraded", "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"database": dbStatus,
		"version":  config.Version,
	})
}
