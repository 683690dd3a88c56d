package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkovs/feedboard/internal/common"
	"github.com/avolkovs/feedboard/internal/models"
)

type mockFeedbackRepo struct {
	CreateFunc      func(ctx context.Context, fb *models.Feedback) error
	GetByIDFunc     func(ctx context.Context, id string) (*models.Feedback, error)
	ListByOwnerFunc func(ctx context.Context, username string) ([]models.Feedback, error)
	UpdateOwnedFunc func(ctx context.Context, id, owner, title, content string) error
	DeleteOwnedFunc func(ctx context.Context, id, owner string) error
}

func (m *mockFeedbackRepo) Create(ctx context.Context, fb *models.Feedback) error {
	return m.CreateFunc(ctx, fb)
}
func (m *mockFeedbackRepo) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockFeedbackRepo) ListByOwner(ctx context.Context, username string) ([]models.Feedback, error) {
	return m.ListByOwnerFunc(ctx, username)
}
func (m *mockFeedbackRepo) UpdateOwned(ctx context.Context, id, owner, title, content string) error {
	return m.UpdateOwnedFunc(ctx, id, owner, title, content)
}
func (m *mockFeedbackRepo) DeleteOwned(ctx context.Context, id, owner string) error {
	return m.DeleteOwnedFunc(ctx, id, owner)
}

func TestFeedbackCreate_AssignsID(t *testing.T) {
	var created *models.Feedback
	repo := &mockFeedbackRepo{
		CreateFunc: func(ctx context.Context, fb *models.Feedback) error {
			created = fb
			return nil
		},
	}
	svc := NewFeedbackService(repo)

	fb, err := svc.Create(context.Background(), "alice", "hi", "body")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected Create to be called on repo")
	}
	if fb.ID == "" {
		t.Error("expected a fresh id to be assigned")
	}
	if fb.Username != "alice" || fb.Title != "hi" || fb.Content != "body" {
		t.Errorf("unexpected feedback: %+v", fb)
	}
}

func TestFeedbackCreate_FreshIDs(t *testing.T) {
	repo := &mockFeedbackRepo{
		CreateFunc: func(ctx context.Context, fb *models.Feedback) error { return nil },
	}
	svc := NewFeedbackService(repo)

	fb1, err := svc.Create(context.Background(), "alice", "a", "b")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	fb2, err := svc.Create(context.Background(), "alice", "a", "b")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if fb1.ID == fb2.ID {
		t.Errorf("two feedback records share id %q", fb1.ID)
	}
}

func TestFeedbackCreate_Validation(t *testing.T) {
	repo := &mockFeedbackRepo{
		CreateFunc: func(ctx context.Context, fb *models.Feedback) error {
			t.Fatal("Create must not reach the repo for invalid input")
			return nil
		},
	}
	svc := NewFeedbackService(repo)

	if _, err := svc.Create(context.Background(), "alice", "", "body"); !errors.Is(err, common.ErrValidation) {
		t.Errorf("empty title: error = %v; want ErrValidation", err)
	}
	if _, err := svc.Create(context.Background(), "alice", "hi", ""); !errors.Is(err, common.ErrValidation) {
		t.Errorf("empty content: error = %v; want ErrValidation", err)
	}
}

func TestFeedbackUpdate_AnonymousGuard(t *testing.T) {
	repo := &mockFeedbackRepo{
		UpdateOwnedFunc: func(ctx context.Context, id, owner, title, content string) error {
			t.Fatal("UpdateOwned must not be called for an anonymous identity")
			return nil
		},
	}
	svc := NewFeedbackService(repo)

	if err := svc.Update(context.Background(), "fb-1", "", "t", "c"); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("error = %v; want ErrUnauthorized", err)
	}
}

func TestFeedbackUpdate_PassesIdentityAsOwner(t *testing.T) {
	repo := &mockFeedbackRepo{
		UpdateOwnedFunc: func(ctx context.Context, id, owner, title, content string) error {
			if id != "fb-1" || owner != "alice" || title != "new" || content != "body" {
				t.Errorf("UpdateOwned(%q, %q, %q, %q); want fb-1, alice, new, body", id, owner, title, content)
			}
			return nil
		},
	}
	svc := NewFeedbackService(repo)

	if err := svc.Update(context.Background(), "fb-1", "alice", "new", "body"); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
}

func TestFeedbackUpdate_OwnerMismatchPropagates(t *testing.T) {
	repo := &mockFeedbackRepo{
		UpdateOwnedFunc: func(ctx context.Context, id, owner, title, content string) error {
			return common.ErrUnauthorized
		},
	}
	svc := NewFeedbackService(repo)

	if err := svc.Update(context.Background(), "fb-1", "bob", "t", "c"); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("error = %v; want ErrUnauthorized", err)
	}
}

func TestFeedbackDelete_Guard(t *testing.T) {
	repo := &mockFeedbackRepo{
		DeleteOwnedFunc: func(ctx context.Context, id, owner string) error {
			t.Fatal("DeleteOwned must not be called for an anonymous identity")
			return nil
		},
	}
	svc := NewFeedbackService(repo)

	if err := svc.Delete(context.Background(), "fb-1", ""); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("error = %v; want ErrUnauthorized", err)
	}
}

func TestFeedbackListByOwner(t *testing.T) {
	repo := &mockFeedbackRepo{
		ListByOwnerFunc: func(ctx context.Context, username string) ([]models.Feedback, error) {
			return []models.Feedback{{ID: "fb-1", Username: username}}, nil
		},
	}
	svc := NewFeedbackService(repo)

	items, err := svc.ListByOwner(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "fb-1" {
		t.Errorf("unexpected items: %+v", items)
	}
}
