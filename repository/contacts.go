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

type ContactsRepo struct {
	MongoCollection *mongo.Collection
}

func GetContactsRepo(client *mongo.Client) *ContactsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &ContactsRepo{
		MongoCollection: client.Database(dbName).Collection(config.CollectionName("CONTACTS_COLLECTION")),
	}
}

// CreateContact inserts a new address-book entry scoped to its owner.
func (r *ContactsRepo) CreateContact(ctx context.Context, contact *model.Contact) error {
	timer := utils.TrackDBOperation("insert", "contacts")
	defer timer.ObserveDuration()

	if contact.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, contact)
	if err != nil {
		utils.TrackError("database", "contact_creation_failed")
		return err
	}
	return nil
}

// GetUserContacts retrieves all contacts for a user, newest first.
func (r *ContactsRepo) GetUserContacts(ctx context.Context, userID string) ([]*model.Contact, error) {
	timer := utils.TrackDBOperation("find", "contacts")
	defer timer.ObserveDuration()

	var contacts []*model.Contact
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "contact_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &contacts); err != nil {
		utils.TrackError("database", "contact_decode_failed")
		return nil, err
	}
	return contacts, nil
}

// GetContact retrieves a specific contact owned by the user.
func (r *ContactsRepo) GetContact(ctx context.Context, contactID string, userID string) (*model.Contact, error) {
	timer := utils.TrackDBOperation("find", "contacts")
	defer timer.ObserveDuration()

	var contact model.Contact
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": contactID, "user_id": userID}).Decode(&contact)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("contact not found")
		}
		utils.TrackError("database", "contact_fetch_failed")
		return nil, err
	}
	return &contact, nil
}

// UpdateContact applies a partial update and stamps updated_at.
func (r *ContactsRepo) UpdateContact(ctx context.Context, contactID string, userID string, updates bson.M) error {
	timer := utils.TrackDBOperation("update", "contacts")
	defer timer.ObserveDuration()

	updates["updated_at"] = time.Now()

	filter := bson.M{"_id": contactID, "user_id": userID}
	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		utils.TrackError("database", "contact_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("contact not found")
	}
	return nil
}

// DeleteContact removes a contact owned by the user.
func (r *ContactsRepo) DeleteContact(ctx context.Context, contactID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "contacts")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": contactID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "contact_delete_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("contact not found")
	}
	return nil
}

// CountUserContacts returns the user's contact count.
func (r *ContactsRepo) CountUserContacts(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "contacts")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	return int(count), err
}

// DeleteUserContacts removes every contact owned by the user.
func (r *ContactsRepo) DeleteUserContacts(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "contacts")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
