package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/mattn/go-sqlite3"
)

// MemoryDSN opens a process-shared in-memory SQLite database. Nothing ever
// touches disk, so a restart starts from an empty store.
const MemoryDSN = "file:planner?mode=memory&cache=shared"

func Connect(driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	full_name TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	owner_id INTEGER NOT NULL REFERENCES users(id),
	task_name TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	due_date TEXT NOT NULL DEFAULT '',
	progress TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// uniqueViolation translates a SQLite UNIQUE constraint failure into the
// taxonomy; any other error passes through untouched.
func uniqueViolation(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return err
	}
	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return apperrors.Conflict("username is already registered")
	case strings.Contains(msg, "users.email"):
		return apperrors.Conflict("email is already registered")
	default:
		return apperrors.Conflict("record already exists")
	}
}
