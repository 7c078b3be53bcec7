package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	leadIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("user_leads_date"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("user_leads_status"),
		},
	}

	dealIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "stage", Value: 1},
				{Key: "last_activity", Value: -1},
			},
			Options: options.Index().SetName("user_deals_stage"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_id_index"),
		},
	}

	taskIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "due", Value: 1},
			},
			Options: options.Index().SetName("user_tasks_due"),
		},
		// At most one follow-up task per lead. Partial so tasks without a
		// lead link stay unconstrained.
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "lead_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_lead_followup").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"lead_id": bson.M{"$exists": true, "$type": "string", "$gt": ""},
				}),
		},
	}

	contactIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("user_contacts_date"),
		},
	}

	shipmentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("user_shipments_status"),
		},
	}

	collections := []struct {
		name    string
		indexes []mongo.IndexModel
	}{
		{"leads", leadIndexes},
		{"deals", dealIndexes},
		{"tasks", taskIndexes},
		{"contacts", contactIndexes},
		{"shipments", shipmentIndexes},
	}

	for _, col := range collections {
		if _, err := db.Collection(col.name).Indexes().CreateMany(ctx, col.indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", col.name, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
