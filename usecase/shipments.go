package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealflow/model"
	"dealflow/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ShipmentStore is the persistence surface ShipmentService needs.
// Satisfied by repository.ShipmentsRepo.
type ShipmentStore interface {
	CreateShipment(ctx context.Context, shipment *model.Shipment) error
	GetUserShipments(ctx context.Context, userID string, status model.ShipmentStatus) ([]*model.Shipment, error)
	UpdateShipment(ctx context.Context, shipmentID string, userID string, updates bson.M) error
	DeleteShipment(ctx context.Context, shipmentID string, userID string) error
}

type ShipmentService struct {
	Shipments ShipmentStore
}

// CreateShipment validates and persists a delivery record, defaulting
// its status to pending.
func (s *ShipmentService) CreateShipment(ctx context.Context, shipment *model.Shipment) error {
	if shipment.UserID == "" {
		return errors.New("user ID is required")
	}
	shipment.Client = strings.TrimSpace(shipment.Client)
	if shipment.Client == "" {
		return errors.New("shipment client is required")
	}
	if shipment.Status != "" && !model.ValidShipmentStatus(shipment.Status) {
		return fmt.Errorf("invalid shipment status: %s", shipment.Status)
	}

	now := time.Now()
	shipment.ShipmentID = uuid.New().String()
	if shipment.Status == "" {
		shipment.Status = model.ShipmentPending
	}
	if shipment.Status == model.ShipmentDelivered && shipment.DeliveredAt == nil {
		shipment.DeliveredAt = &now
	}
	shipment.CreatedAt = now
	shipment.UpdatedAt = now

	if err := s.Shipments.CreateShipment(ctx, shipment); err != nil {
		return err
	}
	utils.TrackCRMOperation("shipments", "create")
	return nil
}

// ListShipments returns the user's shipments, optionally narrowed to
// one status.
func (s *ShipmentService) ListShipments(ctx context.Context, userID string, status model.ShipmentStatus) ([]*model.Shipment, error) {
	if status != "" && !model.ValidShipmentStatus(status) {
		return nil, fmt.Errorf("invalid shipment status: %s", status)
	}
	return s.Shipments.GetUserShipments(ctx, userID, status)
}

// UpdateShipment applies a partial update. Moving a shipment to
// delivered stamps the delivery time; moving it away clears it.
func (s *ShipmentService) UpdateShipment(ctx context.Context, shipmentID string, userID string, updates bson.M) error {
	if raw, ok := updates["status"]; ok {
		status := model.ShipmentStatus(fmt.Sprint(raw))
		if !model.ValidShipmentStatus(status) {
			return fmt.Errorf("invalid shipment status: %s", status)
		}
		if status == model.ShipmentDelivered {
			updates["delivered_at"] = time.Now()
		} else {
			updates["delivered_at"] = nil
		}
	}

	if err := s.Shipments.UpdateShipment(ctx, shipmentID, userID, updates); err != nil {
		return err
	}
	utils.TrackCRMOperation("shipments", "update")
	return nil
}

// DeleteShipment removes a shipment owned by the user.
func (s *ShipmentService) DeleteShipment(ctx context.Context, shipmentID string, userID string) error {
	if err := s.Shipments.DeleteShipment(ctx, shipmentID, userID); err != nil {
		return err
	}
	utils.TrackCRMOperation("shipments", "delete")
	return nil
}
