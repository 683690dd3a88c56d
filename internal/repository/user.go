// Package repository provides PostgreSQL persistence for users and feedback.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/avolkovs/feedboard/internal/common"
	"github.com/avolkovs/feedboard/internal/db"
	"github.com/avolkovs/feedboard/internal/models"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// PostgresUserRepository implements user persistence against a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Create inserts a new user record. Returns common.ErrDuplicateUsername if
// the username is already taken.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
	`, user.Username, user.PasswordHash, user.Email, user.FirstName, user.LastName)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return common.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByUsername fetches a user by username. Returns common.ErrNotFound if
// no such user exists.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT username, password_hash, email, first_name, last_name FROM users WHERE username = $1
	`, username).Scan(&user.Username, &user.PasswordHash, &user.Email, &user.FirstName, &user.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// Delete removes the user and all feedback owned by that username in a
// single transaction, so the cascade holds even under partial failure.
// Returns common.ErrNotFound if the user does not exist.
func (r *PostgresUserRepository) Delete(ctx context.Context, username string) error {
	return db.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM feedback WHERE username = $1
		`, username); err != nil {
			return fmt.Errorf("delete owned feedback: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
			DELETE FROM users WHERE username = $1
		`, username)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return common.ErrNotFound
		}
		return nil
	})
}
