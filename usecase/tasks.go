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

// TaskStore is the persistence surface TaskService needs. Satisfied by
// repository.TasksRepo.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error)
	GetTask(ctx context.Context, taskID string, userID string) (*model.Task, error)
	UpdateTask(ctx context.Context, taskID string, userID string, updates bson.M) error
	DeleteTask(ctx context.Context, taskID string, userID string) error
}

type TaskService struct {
	Tasks TaskStore
}

func validateTask(task *model.Task) error {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return errors.New("task title is required")
	}
	if task.Due.IsZero() {
		return errors.New("task due date is required")
	}
	if task.Priority != "" && !model.ValidPriority(task.Priority) {
		return fmt.Errorf("invalid task priority: %s", task.Priority)
	}
	if task.Title == model.TaskCategoryPayment {
		if strings.TrimSpace(task.PaymentConcept) == "" {
			return errors.New("payment tasks require a payment concept")
		}
		if task.PaymentAmount <= 0 {
			return errors.New("payment tasks require a positive payment amount")
		}
	}
	return nil
}

// CreateTask validates and persists an agenda task.
func (s *TaskService) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	if err := validateTask(task); err != nil {
		return err
	}

	now := time.Now()
	task.TaskID = uuid.New().String()
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.Tasks.CreateTask(ctx, task); err != nil {
		return err
	}
	utils.TrackCRMOperation("tasks", "create")
	return nil
}

// ListTasks returns the user's agenda sorted by due date, together with
// its rollup counters.
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]*model.Task, model.TaskStats, error) {
	tasks, err := s.Tasks.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, model.TaskStats{}, err
	}
	return tasks, ComputeTaskStats(tasks, time.Now()), nil
}

// UpdateTask applies a partial update after validating any priority or
// payment fields it carries.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, userID string, updates bson.M) error {
	if priority, ok := updates["priority"]; ok {
		if !model.ValidPriority(model.Priority(fmt.Sprint(priority))) {
			return fmt.Errorf("invalid task priority: %v", priority)
		}
	}
	if title, ok := updates["title"]; ok && fmt.Sprint(title) == model.TaskCategoryPayment {
		concept, _ := updates["payment_concept"].(string)
		if strings.TrimSpace(concept) == "" {
			return errors.New("payment tasks require a payment concept")
		}
	}

	if err := s.Tasks.UpdateTask(ctx, taskID, userID, updates); err != nil {
		return err
	}
	utils.TrackCRMOperation("tasks", "update")
	return nil
}

// ToggleComplete flips a task between done and pending.
func (s *TaskService) ToggleComplete(ctx context.Context, taskID string, userID string) (bool, error) {
	task, err := s.Tasks.GetTask(ctx, taskID, userID)
	if err != nil {
		return false, err
	}

	completed := !task.Completed
	if err := s.Tasks.UpdateTask(ctx, taskID, userID, bson.M{"completed": completed}); err != nil {
		return false, err
	}
	utils.TrackCRMOperation("tasks", "toggle")
	return completed, nil
}

// DeleteTask removes a task owned by the user.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string, userID string) error {
	if err := s.Tasks.DeleteTask(ctx, taskID, userID); err != nil {
		return err
	}
	utils.TrackCRMOperation("tasks", "delete")
	return nil
}
