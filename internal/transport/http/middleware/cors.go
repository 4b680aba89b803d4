package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adaptiveplay/tictactoe/backend/internal/config"
)

// CORSMiddleware allows browser clients from the configured origins.
// Requests without an Origin header (curl, same-origin) pass through.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" {
			allowed := false
			for _, candidate := range config.AppConfig.AllowedOrigins {
				if candidate == origin {
					allowed = true
					break
				}
			}
			if !allowed {
				log.Printf("[CORS] Origin '%s' not in allowed list: %v", origin, config.AppConfig.AllowedOrigins)
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Origin not allowed"})
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
