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

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := os.Getenv("MONGO_DB")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(config.CollectionName("TASKS_COLLECTION")),
	}
}

// CreateTask inserts a new agenda entry scoped to its owner.
func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	if task.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, task)
	if err != nil {
		utils.TrackError("database", "task_creation_failed")
		return err
	}
	return nil
}

// GetUserTasks retrieves all tasks for a user ordered by due date.
func (r *TasksRepo) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var tasks []*model.Task
	opts := options.Find().SetSort(bson.D{{Key: "due", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		utils.TrackError("database", "task_decode_failed")
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a specific task owned by the user.
func (r *TasksRepo) GetTask(ctx context.Context, taskID string, userID string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var task model.Task
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": taskID, "user_id": userID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("task not found")
		}
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and stamps updated_at.
func (r *TasksRepo) UpdateTask(ctx context.Context, taskID string, userID string, updates bson.M) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	updates["updated_at"] = time.Now()

	filter := bson.M{"_id": taskID, "user_id": userID}
	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("task not found")
	}
	return nil
}

// UpsertFollowUp replaces the follow-up task linked to a lead, or inserts
// it when none exists. The unique partial index on lead_id guarantees at
// most one follow-up per lead even under concurrent schedule calls.
func (r *TasksRepo) UpsertFollowUp(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("upsert", "tasks")
	defer timer.ObserveDuration()

	if task.LeadID == "" {
		utils.TrackError("database", "missing_lead_id")
		return errors.New("lead ID is required for follow-up tasks")
	}

	filter := bson.M{"user_id": task.UserID, "lead_id": task.LeadID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.MongoCollection.ReplaceOne(ctx, filter, task, opts)
	if err != nil {
		utils.TrackError("database", "followup_upsert_failed")
		return err
	}
	return nil
}

// DeleteTask removes a task owned by the user.
func (r *TasksRepo) DeleteTask(ctx context.Context, taskID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": taskID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "task_delete_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("task not found")
	}
	return nil
}

// DeleteUserTasks removes every task owned by the user.
func (r *TasksRepo) DeleteUserTasks(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
