package dto

import (
	"time"

	"dealflow/model"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdateDealRequest carries a partial deal update. Nil fields are left
// untouched.
type UpdateDealRequest struct {
	Title        *string            `json:"title,omitempty"`
	Client       *string            `json:"client,omitempty"`
	Contact      *string            `json:"contact,omitempty"`
	ContactEmail *string            `json:"contact_email,omitempty"`
	ContactPhone *string            `json:"contact_phone,omitempty"`
	Value        *float64           `json:"value,omitempty"`
	Stage        *model.DealStage   `json:"stage,omitempty"`
	Probability  *int               `json:"probability,omitempty"`
	CloseDate    *time.Time         `json:"close_date,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Machines     []model.Machine    `json:"machines,omitempty"`
	Quotations   []model.Attachment `json:"quotations,omitempty"`
}

// ToUpdates converts the request into the document-update form.
func (r *UpdateDealRequest) ToUpdates() bson.M {
	updates := bson.M{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Client != nil {
		updates["client"] = *r.Client
	}
	if r.Contact != nil {
		updates["contact"] = *r.Contact
	}
	if r.ContactEmail != nil {
		updates["contact_email"] = *r.ContactEmail
	}
	if r.ContactPhone != nil {
		updates["contact_phone"] = *r.ContactPhone
	}
	if r.Value != nil {
		updates["value"] = *r.Value
	}
	if r.Stage != nil {
		updates["stage"] = *r.Stage
	}
	if r.Probability != nil {
		updates["probability"] = *r.Probability
	}
	if r.CloseDate != nil {
		updates["close_date"] = *r.CloseDate
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Machines != nil {
		updates["machines"] = r.Machines
	}
	if r.Quotations != nil {
		updates["quotations"] = r.Quotations
	}
	return updates
}

// MoveDealStageRequest drags a deal to another pipeline column.
type MoveDealStageRequest struct {
	Stage model.DealStage `json:"stage" binding:"required"`
}

// ClosingStepRequest toggles one entry of the closing checklist.
type ClosingStepRequest struct {
	Step    string `json:"step" binding:"required"`
	Checked bool   `json:"checked"`
}

// DealBoardResponse is the kanban payload: columns in board order plus
// per-stage totals.
type DealBoardResponse struct {
	Stages  []model.DealStage                    `json:"stages"`
	Columns map[model.DealStage][]*model.Deal    `json:"columns"`
	Totals  map[model.DealStage]model.StageStats `json:"totals"`
}
