package handler

import (
	"dealflow/dto"
	"dealflow/model"
	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

func shipmentService() *usecase.ShipmentService {
	return &usecase.ShipmentService{
		Shipments: repository.GetShipmentsRepo(utils.MongoClient),
	}
}

// ListShipmentsHandler returns the user's shipments, optionally
// filtered by the status query parameter.
func ListShipmentsHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	status := model.ShipmentStatus(c.Query("status"))
	shipments, err := shipmentService().ListShipments(c, userID.(string), status)
	if err != nil {
		if status != "" && !model.ValidShipmentStatus(status) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "Failed to fetch shipments")
		return
	}

	utils.Success(c, gin.H{
		"shipments": shipments,
		"count":     len(shipments),
	})
}

func CreateShipmentHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var shipment model.Shipment
	if err := c.ShouldBindJSON(&shipment); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	shipment.UserID = userID.(string)

	if err := shipmentService().CreateShipment(c, &shipment); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"shipment": shipment})
}

func UpdateShipmentHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := shipmentService().UpdateShipment(c, c.Param("id"), userID.(string), updates); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Shipment not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Shipment updated successfully"})
}

func DeleteShipmentHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := shipmentService().DeleteShipment(c, c.Param("id"), userID.(string)); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Shipment not found")
			return
		}
		utils.InternalError(c, "Failed to delete shipment")
		return
	}

	utils.Success(c, gin.H{"message": "Shipment deleted successfully"})
}
