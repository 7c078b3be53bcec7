package handler

import (
	"errors"
	"log"

	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func ChangePasswordHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format")
		return
	}

	userService := &usecase.UserService{
		UsersRepo: repository.GetUserRepo(utils.MongoClient),
	}

	err := userService.ChangePassword(c, userID.(string), req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utils.Unauthorized(c, "Current password is incorrect")
		case errors.Is(err, usecase.ErrSamePassword):
			utils.BadRequest(c, "New password cannot be the same as current password")
		case err.Error() == "new password does not meet the password requirements":
			utils.BadRequest(c, "New password does not meet requirements")
		default:
			log.Printf("Failed to update password for user %s: %v", userID, err)
			utils.InternalError(c, "Failed to update password")
		}
		return
	}

	utils.Success(c, gin.H{"message": "Password updated successfully"})
}
