package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/feedboard/internal/common"
	"github.com/avolkovs/feedboard/internal/db"
	"github.com/avolkovs/feedboard/internal/models"
)

// PostgresFeedbackRepository implements feedback persistence against a PostgreSQL database.
type PostgresFeedbackRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresFeedbackRepository creates a new PostgresFeedbackRepository using
// the provided *sql.DB.
func NewPostgresFeedbackRepository(db *sql.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{DB: db}
}

// Create inserts a new feedback record and fills in its creation timestamp.
func (r *PostgresFeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO feedback (id, title, content, username)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, fb.ID, fb.Title, fb.Content, fb.Username).Scan(&fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// GetByID fetches a feedback record by id. Returns common.ErrNotFound if absent.
func (r *PostgresFeedbackRepository) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	fb := &models.Feedback{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, title, content, username, created_at FROM feedback WHERE id = $1
	`, id).Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username, &fb.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("select feedback: %w", err)
	}
	return fb, nil
}

// ListByOwner returns all feedback owned by username in insertion order.
func (r *PostgresFeedbackRepository) ListByOwner(ctx context.Context, username string) ([]models.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, content, username, created_at FROM feedback
		WHERE username = $1 ORDER BY created_at, id
	`, username)
	if err != nil {
		return nil, fmt.Errorf("select feedback by owner: %w", err)
	}
	defer rows.Close()

	var items []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.Title, &fb.Content, &fb.Username, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}

// UpdateOwned mutates title and content of the feedback record, but only if
// owner matches the record's username. The ownership check and the update
// run in one transaction with the row locked, so a concurrent mutation
// cannot interleave. Returns common.ErrNotFound if the id is absent and
// common.ErrUnauthorized on an owner mismatch.
func (r *PostgresFeedbackRepository) UpdateOwned(ctx context.Context, id, owner, title, content string) error {
	return db.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := checkOwner(ctx, tx, id, owner); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE feedback SET title = $2, content = $3 WHERE id = $1
		`, id, title, content); err != nil {
			return fmt.Errorf("update feedback: %w", err)
		}
		return nil
	})
}

// DeleteOwned removes the feedback record, but only if owner matches the
// record's username. Same transaction discipline as UpdateOwned.
func (r *PostgresFeedbackRepository) DeleteOwned(ctx context.Context, id, owner string) error {
	return db.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := checkOwner(ctx, tx, id, owner); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM feedback WHERE id = $1
		`, id); err != nil {
			return fmt.Errorf("delete feedback: %w", err)
		}
		return nil
	})
}

// checkOwner locks the feedback row and verifies its owner.
func checkOwner(ctx context.Context, tx db.DBTX, id, owner string) error {
	var recordOwner string
	err := tx.QueryRowContext(ctx, `
		SELECT username FROM feedback WHERE id = $1 FOR UPDATE
	`, id).Scan(&recordOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("lock feedback: %w", err)
	}
	if recordOwner != owner {
		return common.ErrUnauthorized
	}
	return nil
}
