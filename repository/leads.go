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

type LeadsRepo struct {
	MongoCollection *mongo.Collection
}

func GetLeadsRepo(client *mongo.Client) *LeadsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &LeadsRepo{
		MongoCollection: client.Database(dbName).Collection(config.CollectionName("LEADS_COLLECTION")),
	}
}

// CreateLead inserts a new lead scoped to its owner.
func (r *LeadsRepo) CreateLead(ctx context.Context, lead *model.Lead) error {
	timer := utils.TrackDBOperation("insert", "leads")
	defer timer.ObserveDuration()

	if lead.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, lead)
	if err != nil {
		utils.TrackError("database", "lead_creation_failed")
		return err
	}
	return nil
}

// GetUserLeads retrieves all leads for a user, newest first.
func (r *LeadsRepo) GetUserLeads(ctx context.Context, userID string) ([]*model.Lead, error) {
	timer := utils.TrackDBOperation("find", "leads")
	defer timer.ObserveDuration()

	var leads []*model.Lead
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "lead_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &leads); err != nil {
		utils.TrackError("database", "lead_decode_failed")
		return nil, err
	}
	return leads, nil
}

// GetLead retrieves a specific lead owned by the user.
func (r *LeadsRepo) GetLead(ctx context.Context, leadID string, userID string) (*model.Lead, error) {
	timer := utils.TrackDBOperation("find", "leads")
	defer timer.ObserveDuration()

	var lead model.Lead
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": leadID, "user_id": userID}).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("lead not found")
		}
		utils.TrackError("database", "lead_fetch_failed")
		return nil, err
	}
	return &lead, nil
}

// UpdateLead applies a partial update and stamps updated_at plus
// last_activity.
func (r *LeadsRepo) UpdateLead(ctx context.Context, leadID string, userID string, updates bson.M) error {
	timer := utils.TrackDBOperation("update", "leads")
	defer timer.ObserveDuration()

	now := time.Now()
	updates["updated_at"] = now
	updates["last_activity"] = now

	filter := bson.M{"_id": leadID, "user_id": userID}
	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		utils.TrackError("database", "lead_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("lead not found")
	}
	return nil
}

// DeleteLead removes a lead owned by the user.
func (r *LeadsRepo) DeleteLead(ctx context.Context, leadID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "leads")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": leadID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "lead_delete_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("lead not found")
	}
	return nil
}

// CountLeadsByStatus aggregates the user's lead counts per status.
func (r *LeadsRepo) CountLeadsByStatus(ctx context.Context, userID string) (map[model.LeadStatus]int, error) {
	timer := utils.TrackDBOperation("aggregate", "leads")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "lead_aggregate_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status model.LeadStatus `bson:"_id"`
		Count  int              `bson:"count"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	counts := make(map[model.LeadStatus]int, len(results))
	for _, res := range results {
		counts[res.Status] = res.Count
	}
	return counts, nil
}

// DeleteUserLeads removes every lead owned by the user. Used by account
// deletion.
func (r *LeadsRepo) DeleteUserLeads(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "leads")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
