// Package tasks implements ownership-scoped CRUD over the task store. Every
// operation takes the authenticated caller's user id and applies it as a
// mandatory filter; a task that exists but belongs to someone else is
// reported exactly like a task that does not exist.
package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/models"
	"github.com/avoronova/go-todo-planner/internal/store"
)

const dueDateLayout = "2006-01-02"

type Service struct {
	store store.TaskStore
}

func NewService(taskStore store.TaskStore) *Service {
	return &Service{store: taskStore}
}

type CreateInput struct {
	TaskName string `json:"taskName"`
	Detail   string `json:"detail"`
	DueDate  string `json:"dueDate"`
	Progress string `json:"progress"`
}

type Patch struct {
	TaskName *string `json:"taskName"`
	Detail   *string `json:"detail"`
	DueDate  *string `json:"dueDate"`
	Progress *string `json:"progress"`
}

func (s *Service) List(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.store.ListByOwner(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	return s.getOwned(ctx, userID, taskID)
}

func (s *Service) Create(ctx context.Context, userID int64, input CreateInput) (*models.Task, error) {
	taskName := strings.TrimSpace(input.TaskName)
	if taskName == "" {
		return nil, apperrors.Validation("taskName is required")
	}
	if err := validateDueDate(input.DueDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		OwnerID:   userID,
		TaskName:  taskName,
		Detail:    input.Detail,
		DueDate:   input.DueDate,
		Progress:  input.Progress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update merges only the fields present in patch over the stored record and
// refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, userID, taskID int64, patch Patch) (*models.Task, error) {
	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.TaskName != nil {
		taskName := strings.TrimSpace(*patch.TaskName)
		if taskName == "" {
			return nil, apperrors.Validation("taskName cannot be empty")
		}
		task.TaskName = taskName
	}
	if patch.Detail != nil {
		task.Detail = *patch.Detail
	}
	if patch.DueDate != nil {
		if err := validateDueDate(*patch.DueDate); err != nil {
			return nil, err
		}
		task.DueDate = *patch.DueDate
	}
	if patch.Progress != nil {
		// any value is accepted and stored verbatim
		task.Progress = *patch.Progress
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task permanently and returns the record as it existed
// immediately before removal.
func (s *Service) Delete(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, taskID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) getOwned(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := s.store.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != userID {
		// same error as a missing task so existence is not confirmed to
		// non-owners
		return nil, apperrors.NotFound("task not found")
	}
	return task, nil
}

func validateDueDate(dueDate string) error {
	if dueDate == "" {
		return nil
	}
	if _, err := time.Parse(dueDateLayout, dueDate); err != nil {
		return apperrors.Validation("dueDate must be a date in YYYY-MM-DD format")
	}
	return nil
}
