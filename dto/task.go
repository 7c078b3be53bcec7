package dto

import (
	"time"

	"dealflow/model"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdateTaskRequest carries a partial task update. Nil fields are left
// untouched.
type UpdateTaskRequest struct {
	Title          *string         `json:"title,omitempty"`
	Due            *time.Time      `json:"due,omitempty"`
	Client         *string         `json:"client,omitempty"`
	Priority       *model.Priority `json:"priority,omitempty"`
	Completed      *bool           `json:"completed,omitempty"`
	PaymentConcept *string         `json:"payment_concept,omitempty"`
	PaymentAmount  *float64        `json:"payment_amount,omitempty"`
}

// ToUpdates converts the request into the document-update form.
func (r *UpdateTaskRequest) ToUpdates() bson.M {
	updates := bson.M{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Due != nil {
		updates["due"] = *r.Due
	}
	if r.Client != nil {
		updates["client"] = *r.Client
	}
	if r.Priority != nil {
		updates["priority"] = *r.Priority
	}
	if r.Completed != nil {
		updates["completed"] = *r.Completed
	}
	if r.PaymentConcept != nil {
		updates["payment_concept"] = *r.PaymentConcept
	}
	if r.PaymentAmount != nil {
		updates["payment_amount"] = *r.PaymentAmount
	}
	return updates
}

// AgendaResponse bundles the task list with its rollup counters.
type AgendaResponse struct {
	Tasks []*model.Task   `json:"tasks"`
	Stats model.TaskStats `json:"stats"`
}
