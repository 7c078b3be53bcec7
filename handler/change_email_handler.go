package handler

import (
	"errors"
	"log"

	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

type ChangeEmailRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
}

func ChangeEmailHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid email format")
		return
	}

	userService := &usecase.UserService{
		UsersRepo: repository.GetUserRepo(utils.MongoClient),
	}

	if err := userService.ChangeEmail(c, userID.(string), req.NewEmail); err != nil {
		if errors.Is(err, usecase.ErrEmailChangeCooldown) {
			utils.TooManyRequests(c, "Email can only be changed every 2 weeks")
			return
		}
		if err.Error() == "new email is the same as the current one" {
			utils.BadRequest(c, "New email is same as current email")
			return
		}
		log.Printf("Failed to update email for user %s: %v", userID, err)
		utils.InternalError(c, "Database error while updating email")
		return
	}

	utils.Success(c, gin.H{
		"message": "Email updated successfully",
		"email":   req.NewEmail,
	})
}
