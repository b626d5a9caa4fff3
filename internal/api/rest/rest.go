package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/remixrite/remix-ledger/internal/api/middleware"
	"github.com/remixrite/remix-ledger/internal/api/shared/constants"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, writeLimit middleware.RateLimitConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET(constants.HEALTH_PATH, handler.HealthCheck)

	auth := middleware.Auth(authCfg)
	limit := middleware.RateLimit(writeLimit)

	v1 := router.Group("/api/v1")
	{
		// Remix endpoints (public read access, authenticated creation)
		v1.GET("/remix", handler.ListRemixes)
		v1.GET("/remix/:id", handler.GetRemix)
		v1.POST("/remix", auth, limit, handler.CreateRemix)

		// Clip endpoints (public read access, authenticated upload)
		v1.GET("/clips/:id", handler.GetClip)
		v1.POST("/clips", auth, limit, handler.UploadClip)
	}
}
