package dto

import (
	"time"

	"dealflow/model"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdateShipmentRequest carries a partial shipment update. Nil fields
// are left untouched.
type UpdateShipmentRequest struct {
	Client         *string               `json:"client,omitempty"`
	Machine        *string               `json:"machine,omitempty"`
	Carrier        *string               `json:"carrier,omitempty"`
	TrackingNumber *string               `json:"tracking_number,omitempty"`
	Status         *model.ShipmentStatus `json:"status,omitempty"`
	ETA            *time.Time            `json:"eta,omitempty"`
	Notes          *string               `json:"notes,omitempty"`
}

// ToUpdates converts the request into the document-update form.
func (r *UpdateShipmentRequest) ToUpdates() bson.M {
	updates := bson.M{}
	if r.Client != nil {
		updates["client"] = *r.Client
	}
	if r.Machine != nil {
		updates["machine"] = *r.Machine
	}
	if r.Carrier != nil {
		updates["carrier"] = *r.Carrier
	}
	if r.TrackingNumber != nil {
		updates["tracking_number"] = *r.TrackingNumber
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.ETA != nil {
		updates["eta"] = *r.ETA
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	return updates
}
