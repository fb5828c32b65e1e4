package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/models"
)

type SQLTaskStore struct {
	db  *sql.DB
	seq Sequence
}

func NewSQLTaskStore(db *sql.DB) *SQLTaskStore {
	return &SQLTaskStore{db: db}
}

func (s *SQLTaskStore) Create(ctx context.Context, task *models.Task) error {
	task.ID = s.seq.Next()
	query := `INSERT INTO tasks (id, owner_id, task_name, detail, due_date, progress, created_at, updated_at)
	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(
		ctx, query, task.ID, task.OwnerID, task.TaskName, task.Detail, task.DueDate, task.Progress, task.CreatedAt, task.UpdatedAt)
	return err
}

func (s *SQLTaskStore) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT id, owner_id, task_name, detail, due_date, progress, created_at, updated_at FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.OwnerID, &task.TaskName, &task.Detail, &task.DueDate, &task.Progress, &task.CreatedAt, &task.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("task not found")
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListByOwner orders by id; ids are assigned monotonically so this matches
// insertion order.
func (s *SQLTaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	query := `SELECT id, owner_id, task_name, detail, due_date, progress, created_at, updated_at
	 FROM tasks WHERE owner_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.OwnerID, &task.TaskName, &task.Detail, &task.DueDate, &task.Progress, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLTaskStore) Update(ctx context.Context, task *models.Task) error {
	query := `UPDATE tasks SET task_name = $1, detail = $2, due_date = $3, progress = $4, updated_at = $5 WHERE id = $6`

	res, err := s.db.ExecContext(
		ctx, query, task.TaskName, task.Detail, task.DueDate, task.Progress, task.UpdatedAt, task.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLTaskStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound("task not found")
	}
	return nil
}
