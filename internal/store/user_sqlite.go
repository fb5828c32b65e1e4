package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/models"
)

type SQLUserStore struct {
	db  *sql.DB
	seq Sequence
}

func NewSQLUserStore(db *sql.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

func (s *SQLUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = s.seq.Next()
	query := `INSERT INTO users (id, username, password_hash, email, full_name, created_at, updated_at)
	 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(
		ctx, query, user.ID, user.Username, user.PasswordHash, user.Email, user.FullName, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return uniqueViolation(err)
	}
	return nil
}

func (s *SQLUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getWhere(ctx, `id = $1`, id)
}

func (s *SQLUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getWhere(ctx, `username = $1`, username)
}

func (s *SQLUserStore) getWhere(ctx context.Context, cond string, arg any) (*models.User, error) {
	query := `SELECT id, username, password_hash, email, full_name, created_at, updated_at FROM users WHERE ` + cond
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.FullName, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SQLUserStore) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET email = $1, full_name = $2, password_hash = $3, updated_at = $4 WHERE id = $5`

	res, err := s.db.ExecContext(
		ctx, query, user.Email, user.FullName, user.PasswordHash, user.UpdatedAt, user.ID)
	if err != nil {
		return uniqueViolation(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}
