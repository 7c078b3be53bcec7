package model

import "time"

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentInTransit ShipmentStatus = "in-transit"
	ShipmentDelivered ShipmentStatus = "delivered"
)

// ValidShipmentStatus reports whether s is a known shipment status.
func ValidShipmentStatus(s ShipmentStatus) bool {
	switch s {
	case ShipmentPending, ShipmentInTransit, ShipmentDelivered:
		return true
	}
	return false
}

// Shipment tracks delivery of a sold machine to a client.
type Shipment struct {
	ShipmentID     string         `bson:"_id,omitempty" json:"id"`
	UserID         string         `bson:"user_id" json:"user_id"`
	Client         string         `bson:"client" json:"client" binding:"required"`
	Machine        string         `bson:"machine" json:"machine"`
	Carrier        string         `bson:"carrier,omitempty" json:"carrier,omitempty"`
	TrackingNumber string         `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	Status         ShipmentStatus `bson:"status" json:"status"`
	ETA            *time.Time     `bson:"eta,omitempty" json:"eta,omitempty"`
	DeliveredAt    *time.Time     `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	Notes          string         `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updated_at"`
}
