package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"dealflow/utils"
)

// EnhancedRecoveryMiddleware turns panics into a 500 envelope instead of
// tearing down the connection.
func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestID, _ := c.Get("request_id")
				log.Printf("panic recovered (request_id=%v): %v", requestID, r)
				utils.TrackError("http", "panic")
				if !c.Writer.Written() {
					utils.InternalError(c, "Internal server error")
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
