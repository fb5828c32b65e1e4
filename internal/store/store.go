// Package store holds the authoritative user and task collections. Two
// implementations exist: mutex-guarded in-memory maps (the default) and a
// database/sql layer over an in-memory SQLite database. Both assign ids from
// an atomic per-entity Sequence so ids are unique, monotonically increasing
// and never reused, even after deletion.
package store

import (
	"context"
	"sync/atomic"

	"github.com/avoronova/go-todo-planner/internal/models"
)

// Sequence hands out ids for one entity kind.
type Sequence struct {
	n atomic.Int64
}

func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}

// UserStore owns the registered users. Create and Update enforce username and
// email uniqueness atomically with the write.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// TaskStore owns the tasks. ListByOwner returns tasks in insertion order.
// Ownership filtering beyond ListByOwner is the service layer's job.
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
}
