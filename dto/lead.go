package dto

import (
	"time"

	"dealflow/model"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdateLeadRequest carries a partial lead update. Nil fields are left
// untouched.
type UpdateLeadRequest struct {
	Name           *string                       `json:"name,omitempty"`
	Contact        *string                       `json:"contact,omitempty"`
	Position       *string                       `json:"position,omitempty"`
	Email          *string                       `json:"email,omitempty"`
	Phone          *string                       `json:"phone,omitempty"`
	Status         *model.LeadStatus             `json:"status,omitempty"`
	Score          *int                          `json:"score,omitempty"`
	Source         *string                       `json:"source,omitempty"`
	Machines       []model.Machine               `json:"machines,omitempty"`
	Notes          *string                       `json:"notes,omitempty"`
	NextStep       *model.NextStep               `json:"next_step,omitempty"`
	ActivityStatus map[string]model.ActivityStep `json:"activity_status,omitempty"`
	Quotations     []model.Attachment            `json:"quotations,omitempty"`
	FollowUpDate   *time.Time                    `json:"follow_up_date,omitempty"`
}

// ToUpdates converts the request into the document-update form.
func (r *UpdateLeadRequest) ToUpdates() bson.M {
	updates := bson.M{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Contact != nil {
		updates["contact"] = *r.Contact
	}
	if r.Position != nil {
		updates["position"] = *r.Position
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.Score != nil {
		updates["score"] = *r.Score
	}
	if r.Source != nil {
		updates["source"] = *r.Source
	}
	if r.Machines != nil {
		updates["machines"] = r.Machines
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	if r.NextStep != nil {
		updates["next_step"] = r.NextStep
	}
	if r.ActivityStatus != nil {
		updates["activity_status"] = r.ActivityStatus
	}
	if r.Quotations != nil {
		updates["quotations"] = r.Quotations
	}
	if r.FollowUpDate != nil {
		updates["follow_up_date"] = *r.FollowUpDate
	}
	return updates
}

// ChangeLeadStatusRequest moves a lead to a new temperature.
type ChangeLeadStatusRequest struct {
	Status model.LeadStatus `json:"status" binding:"required"`
}

// ScheduleFollowUpRequest links a follow-up task to a lead.
type ScheduleFollowUpRequest struct {
	ActionType string    `json:"action_type" binding:"required"`
	Due        time.Time `json:"due" binding:"required"`
}
