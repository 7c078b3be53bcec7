package dto

import (
	"dealflow/model"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdateContactRequest carries a partial contact update. Nil fields
// are left untouched.
type UpdateContactRequest struct {
	Name       *string            `json:"name,omitempty"`
	Company    *string            `json:"company,omitempty"`
	Position   *string            `json:"position,omitempty"`
	Email      *string            `json:"email,omitempty"`
	Phone      *string            `json:"phone,omitempty"`
	SaleAmount *float64           `json:"sale_amount,omitempty"`
	Commission *float64           `json:"commission,omitempty"`
	Machines   []model.Machine    `json:"machines,omitempty"`
	Quotations []model.Attachment `json:"quotations,omitempty"`
}

// ToUpdates converts the request into the document-update form.
func (r *UpdateContactRequest) ToUpdates() bson.M {
	updates := bson.M{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Company != nil {
		updates["company"] = *r.Company
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
	if r.SaleAmount != nil {
		updates["sale_amount"] = *r.SaleAmount
	}
	if r.Commission != nil {
		updates["commission"] = *r.Commission
	}
	if r.Machines != nil {
		updates["machines"] = r.Machines
	}
	if r.Quotations != nil {
		updates["quotations"] = r.Quotations
	}
	return updates
}
