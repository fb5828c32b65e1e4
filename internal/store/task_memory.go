package store

import (
	"context"
	"sync"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/models"
)

// MemoryTaskStore keeps tasks in a map plus an insertion-order slice so List
// is stable across calls.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	seq   Sequence
	byID  map[int64]*models.Task
	order []int64
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{byID: make(map[int64]*models.Task)}
}

func (s *MemoryTaskStore) Create(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.seq.Next()
	s.byID[task.ID] = task.Clone()
	s.order = append(s.order, task.ID)
	return nil
}

func (s *MemoryTaskStore) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFound("task not found")
	}
	return task.Clone(), nil
}

func (s *MemoryTaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*models.Task, 0)
	for _, id := range s.order {
		if task := s.byID[id]; task != nil && task.OwnerID == ownerID {
			tasks = append(tasks, task.Clone())
		}
	}
	return tasks, nil
}

func (s *MemoryTaskStore) Update(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[task.ID]; !ok {
		return apperrors.NotFound("task not found")
	}
	s.byID[task.ID] = task.Clone()
	return nil
}

func (s *MemoryTaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return apperrors.NotFound("task not found")
	}
	delete(s.byID, id)
	for i, taskID := range s.order {
		if taskID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
