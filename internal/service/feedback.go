package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/avolkovs/feedboard/internal/common"
	"github.com/avolkovs/feedboard/internal/models"
)

// FeedbackRepository defines the persistence operations required by FeedbackService.
type FeedbackRepository interface {
	// Create inserts a new feedback record.
	Create(ctx context.Context, fb *models.Feedback) error
	// GetByID fetches a feedback record; common.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	// ListByOwner returns the owner's feedback in insertion order.
	ListByOwner(ctx context.Context, username string) ([]models.Feedback, error)
	// UpdateOwned mutates title/content iff owner matches, atomically.
	UpdateOwned(ctx context.Context, id, owner, title, content string) error
	// DeleteOwned removes the record iff owner matches, atomically.
	DeleteOwned(ctx context.Context, id, owner string) error
}

// FeedbackService implements owner-guarded feedback CRUD.
type FeedbackService struct {
	repo FeedbackRepository
}

// NewFeedbackService constructs a FeedbackService using the provided repository.
func NewFeedbackService(repo FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Create persists a new feedback record for owner with a fresh unique id.
// Returns common.ErrValidation if title or content is empty.
func (s *FeedbackService) Create(ctx context.Context, owner, title, content string) (*models.Feedback, error) {
	if title == "" || content == "" {
		return nil, common.ErrValidation
	}

	fb := &models.Feedback{
		ID:       uuid.NewString(),
		Title:    title,
		Content:  content,
		Username: owner,
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// Get fetches a feedback record by id; common.ErrNotFound if absent.
func (s *FeedbackService) Get(ctx context.Context, id string) (*models.Feedback, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByOwner returns all feedback owned by username in insertion order.
func (s *FeedbackService) ListByOwner(ctx context.Context, username string) ([]models.Feedback, error) {
	return s.repo.ListByOwner(ctx, username)
}

// Update mutates title and content of the record, guarded by the session
// identity: common.ErrUnauthorized unless identity owns the record. The
// ownership check and the write happen in one repository transaction.
func (s *FeedbackService) Update(ctx context.Context, id, identity, title, content string) error {
	if identity == "" {
		return common.ErrUnauthorized
	}
	if title == "" || content == "" {
		return common.ErrValidation
	}
	return s.repo.UpdateOwned(ctx, id, identity, title, content)
}

// Delete removes the record, guarded the same way as Update.
func (s *FeedbackService) Delete(ctx context.Context, id, identity string) error {
	if identity == "" {
		return common.ErrUnauthorized
	}
	return s.repo.DeleteOwned(ctx, id, identity)
}
