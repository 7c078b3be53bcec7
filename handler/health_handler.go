package handler

import (
	"context"
	"net/http"
	"time"

	"dealflow/services"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthCheckHandler reports service health: database and cache
// connectivity plus a host resource snapshot.
func HealthCheckHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()

	mongoStatus := "up"
	if err := utils.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
		mongoStatus = "down"
	}

	redisStatus := "up"
	if services.TokenBlacklist == nil || !services.TokenBlacklist.IsConnected() {
		redisStatus = "down"
	}

	status := http.StatusOK
	overall := "healthy"
	if mongoStatus == "down" {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	} else if redisStatus == "down" {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"components": gin.H{
			"mongodb": mongoStatus,
			"redis":   redisStatus,
		},
		"system": utils.GetSystemSnapshot(),
	})
}
