package utils

import "github.com/gin-gonic/gin"

// Helper function for getting baseURL of project
func GetBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/api"
}
