package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dealflow/utils"
)

// CORSMiddleware allows the configured frontend origins. CORS_ALLOWED_ORIGINS
// is a comma-separated list; the default covers local Vite development.
func CORSMiddleware() gin.HandlerFunc {
	allowed := strings.Split(
		utils.GetEnvAsString("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		for _, o := range allowed {
			if o == origin || o == "*" {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
