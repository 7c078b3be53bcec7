package handler

import (
	"strings"

	"dealflow/dto"
	"dealflow/model"
	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

func leadService() *usecase.LeadService {
	return &usecase.LeadService{
		Leads: repository.GetLeadsRepo(utils.MongoClient),
		Tasks: repository.GetTasksRepo(utils.MongoClient),
	}
}

func isNotFound(err error) bool {
	return err != nil && strings.HasSuffix(err.Error(), "not found")
}

// SearchLeadsHandler lists the user's leads, narrowed by the q and
// status query parameters.
func SearchLeadsHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	opts := usecase.LeadSearchOptions{
		Query:  c.Query("q"),
		Status: model.LeadStatus(c.Query("status")),
	}

	leads, err := leadService().SearchLeads(c, userID.(string), opts)
	if err != nil {
		utils.InternalError(c, "Failed to fetch leads")
		return
	}

	utils.Success(c, gin.H{
		"leads":          leads,
		"count":          len(leads),
		"possible_sales": usecase.TotalPossibleSales(leads),
	})
}

func CreateLeadHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var lead model.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	lead.UserID = userID.(string)

	if err := leadService().CreateLead(c, &lead); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"lead": lead})
}

func GetLeadHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	lead, err := leadService().Leads.GetLead(c, c.Param("id"), userID.(string))
	if err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Lead not found")
			return
		}
		utils.InternalError(c, "Failed to fetch lead")
		return
	}

	utils.Success(c, gin.H{"lead": lead})
}

func UpdateLeadHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := leadService().UpdateLead(c, c.Param("id"), userID.(string), updates); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Lead not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Lead updated successfully"})
}

// ChangeLeadStatusHandler moves a lead to a new temperature and
// returns the freshly assigned score.
func ChangeLeadStatusHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.ChangeLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	score, err := leadService().ChangeStatus(c, c.Param("id"), userID.(string), req.Status)
	if err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Lead not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"message": "Lead status updated",
		"status":  req.Status,
		"score":   score,
	})
}

// ScheduleFollowUpHandler creates or replaces the lead's follow-up
// task. A lead keeps at most one.
func ScheduleFollowUpHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.ScheduleFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	task, err := leadService().ScheduleFollowUp(c, userID.(string), c.Param("id"), req.ActionType, req.Due)
	if err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Lead not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"task": task})
}

// ConvertLeadHandler promotes a lead into a pipeline deal.
func ConvertLeadHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	conversions := &usecase.ConversionService{
		Leads: repository.GetLeadsRepo(utils.MongoClient),
		Deals: repository.GetDealsRepo(utils.MongoClient),
	}

	deal, err := conversions.ConvertLeadToDeal(c, c.Param("id"), userID.(string))
	if err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Lead not found")
			return
		}
		utils.InternalError(c, "Failed to convert lead")
		return
	}

	utils.Created(c, gin.H{
		"message": "Lead converted to deal",
		"deal":    deal,
	})
}

func DeleteLeadHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := leadService().DeleteLead(c, c.Param("id"), userID.(string)); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Lead not found")
			return
		}
		utils.InternalError(c, "Failed to delete lead")
		return
	}

	utils.Success(c, gin.H{"message": "Lead deleted successfully"})
}
