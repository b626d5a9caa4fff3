package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/remixrite/remix-ledger/internal/api/shared/constants"
)

// SetupCORS configures CORS middleware; an empty origin list allows every origin
func SetupCORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", constants.REQUEST_ID_HEADER},
		ExposeHeaders:    []string{"Content-Length", constants.REQUEST_ID_HEADER},
		AllowCredentials: false,
		MaxAge:           time.Hour,
	}

	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}

	return cors.New(config)
}
