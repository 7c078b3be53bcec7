package handler

import (
	"dealflow/dto"
	"dealflow/model"
	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

func dealService() *usecase.DealService {
	return &usecase.DealService{
		Deals: repository.GetDealsRepo(utils.MongoClient),
	}
}

// GetDealBoardHandler returns the pipeline as kanban columns plus
// per-stage totals.
func GetDealBoardHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	columns, err := dealService().Board(c, userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch deals")
		return
	}

	totals := make(map[model.DealStage]model.StageStats, len(model.Stages))
	for stage, deals := range columns {
		var value float64
		for _, deal := range deals {
			value += deal.Value
		}
		totals[stage] = model.StageStats{Count: len(deals), Value: value}
	}

	utils.Success(c, dto.DealBoardResponse{
		Stages:  model.Stages,
		Columns: columns,
		Totals:  totals,
	})
}

func CreateDealHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var deal model.Deal
	if err := c.ShouldBindJSON(&deal); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	deal.UserID = userID.(string)

	if err := dealService().CreateDeal(c, &deal); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"deal": deal})
}

func GetDealHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	deal, err := dealService().Deals.GetDeal(c, c.Param("id"), userID.(string))
	if err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Deal not found")
			return
		}
		utils.InternalError(c, "Failed to fetch deal")
		return
	}

	utils.Success(c, gin.H{"deal": deal})
}

func UpdateDealHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := dealService().UpdateDeal(c, c.Param("id"), userID.(string), updates); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Deal not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Deal updated successfully"})
}

// MoveDealStageHandler drags a deal to another pipeline column.
func MoveDealStageHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.MoveDealStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if err := dealService().MoveStage(c, c.Param("id"), userID.(string), req.Stage); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Deal not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"message": "Deal stage updated",
		"stage":   req.Stage,
	})
}

// SetClosingStepHandler toggles one item of the deal's closing
// checklist.
func SetClosingStepHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.ClosingStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if err := dealService().SetClosingStep(c, c.Param("id"), userID.(string), req.Step, req.Checked); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Deal not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Closing checklist updated"})
}

// SetClientFileHandler replaces the deal's onboarding dossier.
func SetClientFileHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var file model.ClientFile
	if err := c.ShouldBindJSON(&file); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if err := dealService().SetClientFile(c, c.Param("id"), userID.(string), &file); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Deal not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Client file updated"})
}

// RevertDealHandler sends a deal back to the lead board.
func RevertDealHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	conversions := &usecase.ConversionService{
		Leads: repository.GetLeadsRepo(utils.MongoClient),
		Deals: repository.GetDealsRepo(utils.MongoClient),
	}

	lead, err := conversions.RevertDealToLead(c, c.Param("id"), userID.(string))
	if err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Deal not found")
			return
		}
		utils.InternalError(c, "Failed to revert deal")
		return
	}

	utils.Created(c, gin.H{
		"message": "Deal reverted to lead",
		"lead":    lead,
	})
}

func DeleteDealHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := dealService().DeleteDeal(c, c.Param("id"), userID.(string)); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Deal not found")
			return
		}
		utils.InternalError(c, "Failed to delete deal")
		return
	}

	utils.Success(c, gin.H{"message": "Deal deleted successfully"})
}
