package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-insight/internal/shared/server/middleware"
	"resume-insight/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	isGuest := false
	if v, ok := c.Get("isGuest"); ok {
		isGuest, _ = v.(bool)
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"userId":  userID,
		"isGuest": isGuest,
	})
}
