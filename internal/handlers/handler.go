package handlers

import (
	"net/http"

	"github.com/farellandr/travel-maker/config"
	"github.com/farellandr/travel-maker/internal/helpers"
	"github.com/farellandr/travel-maker/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// database returns the request's handle or writes a 500 and returns nil.
func database(c *gin.Context) *gorm.DB {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
	}
	return gormDB
}

func settings(c *gin.Context) *config.Config {
	cfg, exists := c.Get("config")
	if !exists {
		return &config.Config{}
	}
	return cfg.(*config.Config)
}

// pathID parses the :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context, what string) (uint, bool) {
	id, err := helpers.ParseID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid "+what+" id.")
		return 0, false
	}
	return id, true
}

// queryID parses a required numeric query parameter, writing a 400 on failure.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok {
		helpers.RespondWithError(c, http.StatusBadRequest, "Query parameter "+name+" is required.")
		return 0, false
	}
	id, err := helpers.ParseID(raw)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Query parameter "+name+" must be a positive integer.")
		return 0, false
	}
	return id, true
}
