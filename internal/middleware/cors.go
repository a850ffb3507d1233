package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// CORS allows the browser form hosts in origins (local dev origins when empty).
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization",
			APIKeyHeader, IdempotencyKeyHeader, RequestIDHeader,
		},
		ExposeHeaders:    []string{RequestIDHeader, "Content-Disposition", IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
