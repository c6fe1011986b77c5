package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured SPA origins with credentials; gin-contrib
// answers preflight OPTIONS with 200 and no body.
func CORS(allowOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", KeyRequestID},
		ExposeHeaders:    []string{KeyRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	cfg.OptionsResponseStatusCode = 200
	return cors.New(cfg)
}
