package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"dealflow/config"
	"dealflow/model"
	"dealflow/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShipmentsRepo struct {
	MongoCollection *mongo.Collection
}

func GetShipmentsRepo(client *mongo.Client) *ShipmentsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &ShipmentsRepo{
		MongoCollection: client.Database(dbName).Collection(config.CollectionName("SHIPMENTS_COLLECTION")),
	}
}

// CreateShipment inserts a new delivery entry scoped to its owner.
func (r *ShipmentsRepo) CreateShipment(ctx context.Context, shipment *model.Shipment) error {
	timer := utils.TrackDBOperation("insert", "shipments")
	defer timer.ObserveDuration()

	if shipment.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, shipment)
	if err != nil {
		utils.TrackError("database", "shipment_creation_failed")
		return err
	}
	return nil
}

// GetUserShipments retrieves the user's shipments, optionally filtered by
// status, newest first.
func (r *ShipmentsRepo) GetUserShipments(ctx context.Context, userID string, status model.ShipmentStatus) ([]*model.Shipment, error) {
	timer := utils.TrackDBOperation("find", "shipments")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}

	var shipments []*model.Shipment
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "shipment_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &shipments); err != nil {
		utils.TrackError("database", "shipment_decode_failed")
		return nil, err
	}
	return shipments, nil
}

// UpdateShipment applies a partial update and stamps updated_at.
func (r *ShipmentsRepo) UpdateShipment(ctx context.Context, shipmentID string, userID string, updates bson.M) error {
	timer := utils.TrackDBOperation("update", "shipments")
	defer timer.ObserveDuration()

	updates["updated_at"] = time.Now()

	filter := bson.M{"_id": shipmentID, "user_id": userID}
	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		utils.TrackError("database", "shipment_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("shipment not found")
	}
	return nil
}

// DeleteShipment removes a shipment owned by the user.
func (r *ShipmentsRepo) DeleteShipment(ctx context.Context, shipmentID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "shipments")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": shipmentID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "shipment_delete_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("shipment not found")
	}
	return nil
}

// CountUserShipments returns the user's shipment count.
func (r *ShipmentsRepo) CountUserShipments(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "shipments")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	return int(count), err
}

// DeleteUserShipments removes every shipment owned by the user.
func (r *ShipmentsRepo) DeleteUserShipments(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "shipments")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
