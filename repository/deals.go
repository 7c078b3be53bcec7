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

type DealsRepo struct {
	MongoCollection *mongo.Collection
}

func GetDealsRepo(client *mongo.Client) *DealsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &DealsRepo{
		MongoCollection: client.Database(dbName).Collection(config.CollectionName("DEALS_COLLECTION")),
	}
}

// CreateDeal inserts a new deal scoped to its owner.
func (r *DealsRepo) CreateDeal(ctx context.Context, deal *model.Deal) error {
	timer := utils.TrackDBOperation("insert", "deals")
	defer timer.ObserveDuration()

	if deal.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, deal)
	if err != nil {
		utils.TrackError("database", "deal_creation_failed")
		return err
	}
	return nil
}

// GetUserDeals retrieves all deals for a user, most recently active first.
func (r *DealsRepo) GetUserDeals(ctx context.Context, userID string) ([]*model.Deal, error) {
	timer := utils.TrackDBOperation("find", "deals")
	defer timer.ObserveDuration()

	var deals []*model.Deal
	opts := options.Find().SetSort(bson.D{{Key: "last_activity", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "deal_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &deals); err != nil {
		utils.TrackError("database", "deal_decode_failed")
		return nil, err
	}
	return deals, nil
}

// GetDeal retrieves a specific deal owned by the user.
func (r *DealsRepo) GetDeal(ctx context.Context, dealID string, userID string) (*model.Deal, error) {
	timer := utils.TrackDBOperation("find", "deals")
	defer timer.ObserveDuration()

	var deal model.Deal
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": dealID, "user_id": userID}).Decode(&deal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("deal not found")
		}
		utils.TrackError("database", "deal_fetch_failed")
		return nil, err
	}
	return &deal, nil
}

// UpdateDeal applies a partial update and stamps updated_at plus
// last_activity.
func (r *DealsRepo) UpdateDeal(ctx context.Context, dealID string, userID string, updates bson.M) error {
	timer := utils.TrackDBOperation("update", "deals")
	defer timer.ObserveDuration()

	now := time.Now()
	updates["updated_at"] = now
	updates["last_activity"] = now

	filter := bson.M{"_id": dealID, "user_id": userID}
	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		utils.TrackError("database", "deal_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("deal not found")
	}
	return nil
}

// DeleteDeal removes a deal owned by the user.
func (r *DealsRepo) DeleteDeal(ctx context.Context, dealID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "deals")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": dealID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "deal_delete_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("deal not found")
	}
	return nil
}

// PipelineByStage aggregates deal count and total value per stage.
func (r *DealsRepo) PipelineByStage(ctx context.Context, userID string) (map[model.DealStage]model.StageStats, error) {
	timer := utils.TrackDBOperation("aggregate", "deals")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$stage",
			"count": bson.M{"$sum": 1},
			"value": bson.M{"$sum": "$value"},
		}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "deal_aggregate_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Stage model.DealStage `bson:"_id"`
		Count int             `bson:"count"`
		Value float64         `bson:"value"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	stats := make(map[model.DealStage]model.StageStats, len(results))
	for _, res := range results {
		stats[res.Stage] = model.StageStats{Count: res.Count, Value: res.Value}
	}
	return stats, nil
}

// DeleteUserDeals removes every deal owned by the user.
func (r *DealsRepo) DeleteUserDeals(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "deals")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
