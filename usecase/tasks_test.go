package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"dealflow/model"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeTaskStore struct {
	tasks map[string]*model.Task
}

func newFakeTaskStore(tasks ...*model.Task) *fakeTaskStore {
	store := &fakeTaskStore{tasks: make(map[string]*model.Task)}
	for _, task := range tasks {
		store.tasks[task.TaskID] = task
	}
	return store
}

func (f *fakeTaskStore) CreateTask(ctx context.Context, task *model.Task) error {
	f.tasks[task.TaskID] = task
	return nil
}

func (f *fakeTaskStore) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	var out []*model.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) GetTask(ctx context.Context, taskID string, userID string) (*model.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, errors.New("task not found")
	}
	return task, nil
}

func (f *fakeTaskStore) UpdateTask(ctx context.Context, taskID string, userID string, updates bson.M) error {
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return errors.New("task not found")
	}
	if completed, ok := updates["completed"]; ok {
		task.Completed = completed.(bool)
	}
	return nil
}

func (f *fakeTaskStore) DeleteTask(ctx context.Context, taskID string, userID string) error {
	if _, ok := f.tasks[taskID]; !ok {
		return errors.New("task not found")
	}
	delete(f.tasks, taskID)
	return nil
}

func TestCreateTaskDefaults(t *testing.T) {
	svc := &TaskService{Tasks: newFakeTaskStore()}

	task := &model.Task{UserID: "user-1", Title: "Call supplier", Due: time.Now().Add(time.Hour)}
	if err := svc.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if task.TaskID == "" {
		t.Error("task ID not assigned")
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("default priority = %s, want medium", task.Priority)
	}
}

func TestCreateTaskPaymentValidation(t *testing.T) {
	svc := &TaskService{Tasks: newFakeTaskStore()}
	due := time.Now().Add(time.Hour)

	tests := []struct {
		name    string
		task    *model.Task
		wantErr bool
	}{
		{
			name: "payment task without concept rejected",
			task: &model.Task{UserID: "u", Title: model.TaskCategoryPayment, Due: due,
				PaymentAmount: 500},
			wantErr: true,
		},
		{
			name: "payment task without amount rejected",
			task: &model.Task{UserID: "u", Title: model.TaskCategoryPayment, Due: due,
				PaymentConcept: "Deposit"},
			wantErr: true,
		},
		{
			name: "payment task with concept and amount accepted",
			task: &model.Task{UserID: "u", Title: model.TaskCategoryPayment, Due: due,
				PaymentConcept: "Deposit", PaymentAmount: 500},
			wantErr: false,
		},
		{
			name:    "ordinary task needs no payment fields",
			task:    &model.Task{UserID: "u", Title: "Call supplier", Due: due},
			wantErr: false,
		},
		{
			name:    "missing due date rejected",
			task:    &model.Task{UserID: "u", Title: "Call supplier"},
			wantErr: true,
		},
		{
			name:    "bad priority rejected",
			task:    &model.Task{UserID: "u", Title: "Call", Due: due, Priority: "urgent"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateTask(context.Background(), tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateTask() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToggleComplete(t *testing.T) {
	task := &model.Task{TaskID: "task-1", UserID: "user-1", Title: "Call", Due: time.Now()}
	store := newFakeTaskStore(task)
	svc := &TaskService{Tasks: store}

	completed, err := svc.ToggleComplete(context.Background(), "task-1", "user-1")
	if err != nil {
		t.Fatalf("ToggleComplete() error = %v", err)
	}
	if !completed || !task.Completed {
		t.Error("first toggle should complete the task")
	}

	completed, err = svc.ToggleComplete(context.Background(), "task-1", "user-1")
	if err != nil {
		t.Fatalf("second ToggleComplete() error = %v", err)
	}
	if completed || task.Completed {
		t.Error("second toggle should reopen the task")
	}

	if _, err := svc.ToggleComplete(context.Background(), "missing", "user-1"); err == nil {
		t.Error("ToggleComplete() on a missing task should fail")
	}
}
