package handler

import (
	"dealflow/dto"
	"dealflow/model"
	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

func contactService() *usecase.ContactService {
	return &usecase.ContactService{
		Contacts: repository.GetContactsRepo(utils.MongoClient),
	}
}

// SearchContactsHandler lists the user's contacts, narrowed by the q
// query parameter.
func SearchContactsHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	contacts, err := contactService().SearchContacts(c, userID.(string), c.Query("q"))
	if err != nil {
		utils.InternalError(c, "Failed to fetch contacts")
		return
	}

	utils.Success(c, gin.H{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

func CreateContactHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var contact model.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	contact.UserID = userID.(string)

	if err := contactService().CreateContact(c, &contact); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"contact": contact})
}

func UpdateContactHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := contactService().UpdateContact(c, c.Param("id"), userID.(string), updates); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Contact not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Contact updated successfully"})
}

// ConvertContactHandler seeds a new lead from an address-book contact.
// The contact itself stays put.
func ConvertContactHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	conversions := &usecase.ConversionService{
		Leads:    repository.GetLeadsRepo(utils.MongoClient),
		Deals:    repository.GetDealsRepo(utils.MongoClient),
		Contacts: repository.GetContactsRepo(utils.MongoClient),
	}

	lead, err := conversions.ConvertContactToLead(c, c.Param("id"), userID.(string))
	if err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Contact not found")
			return
		}
		utils.InternalError(c, "Failed to convert contact")
		return
	}

	utils.Created(c, gin.H{
		"message": "Contact converted to lead",
		"lead":    lead,
	})
}

func DeleteContactHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := contactService().DeleteContact(c, c.Param("id"), userID.(string)); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Contact not found")
			return
		}
		utils.InternalError(c, "Failed to delete contact")
		return
	}

	utils.Success(c, gin.H{"message": "Contact deleted successfully"})
}
