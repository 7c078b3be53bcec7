package handler

import (
	"log"

	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

// DeleteUserHandler removes the account together with every lead,
// deal, task, contact, shipment and session it owns.
func DeleteUserHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	userService := &usecase.UserService{
		UsersRepo:     repository.GetUserRepo(utils.MongoClient),
		LeadsRepo:     repository.GetLeadsRepo(utils.MongoClient),
		DealsRepo:     repository.GetDealsRepo(utils.MongoClient),
		TasksRepo:     repository.GetTasksRepo(utils.MongoClient),
		ContactsRepo:  repository.GetContactsRepo(utils.MongoClient),
		ShipmentsRepo: repository.GetShipmentsRepo(utils.MongoClient),
		SessionsRepo:  repository.GetSessionRepo(utils.MongoClient),
	}

	if err := userService.DeleteAccount(c, userID.(string)); err != nil {
		if err.Error() == "user not found" {
			utils.NotFound(c, "User not found")
			return
		}
		log.Printf("Failed to delete user %s: %v", userID, err)
		utils.InternalError(c, "Failed to delete user")
		return
	}

	// Clear session cookie
	c.SetCookie("session_id", "", -1, "/", "", true, true)

	utils.Success(c, gin.H{"message": "User deleted successfully"})
}
