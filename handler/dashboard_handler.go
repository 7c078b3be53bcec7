package handler

import (
	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardHandler assembles the aggregate snapshot behind the
// dashboard cards.
func GetDashboardHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	dashboard := &usecase.DashboardService{
		Leads:     repository.GetLeadsRepo(utils.MongoClient),
		Deals:     repository.GetDealsRepo(utils.MongoClient),
		Tasks:     repository.GetTasksRepo(utils.MongoClient),
		Contacts:  repository.GetContactsRepo(utils.MongoClient),
		Shipments: repository.GetShipmentsRepo(utils.MongoClient),
		Users:     repository.GetUserRepo(utils.MongoClient),
		Sessions:  repository.GetSessionRepo(utils.MongoClient),
	}

	stats, err := dashboard.Snapshot(c, userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to build dashboard")
		return
	}

	utils.Success(c, stats)
}
