package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avolkovs/feedboard/internal/common"
	"github.com/avolkovs/feedboard/internal/middleware"
	"github.com/avolkovs/feedboard/internal/models"
	"github.com/avolkovs/feedboard/internal/session"
)

// FeedbackService defines the feedback operations required by the HTTP handlers.
type FeedbackService interface {
	// Create persists a new feedback record for owner.
	Create(ctx context.Context, owner, title, content string) (*models.Feedback, error)
	// Get fetches a record; common.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*models.Feedback, error)
	// ListByOwner returns the owner's records in insertion order.
	ListByOwner(ctx context.Context, username string) ([]models.Feedback, error)
	// Update mutates title/content, guarded by identity.
	Update(ctx context.Context, id, identity, title, content string) error
	// Delete removes the record, guarded by identity.
	Delete(ctx context.Context, id, identity string) error
}

// UserHandler serves the user page and account deletion.
type UserHandler struct {
	// Users performs account operations.
	Users UserService
	// Feedback lists the records shown on the user page.
	Feedback FeedbackService
	// Sessions clears the session after self-deletion.
	Sessions *session.Manager
	// Tmpl renders the HTML pages.
	Tmpl *Templates
	// Log is the structured logger.
	Log *zap.Logger
}

// Show renders a user's profile and feedback. The page is visible only to
// the user it belongs to; everyone else is redirected without learning
// whether the account exists.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	identity := middleware.IdentityFromContext(r.Context())
	if identity == "" || identity != username {
		unauthorizedRedirect(w, r)
		return
	}

	user, err := h.Users.Get(r.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// The session references an account that no longer exists.
			h.Sessions.Clear(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		serverError(w, h.Log, "get user", err)
		return
	}

	items, err := h.Feedback.ListByOwner(r.Context(), username)
	if err != nil {
		serverError(w, h.Log, "list feedback", err)
		return
	}

	page := Page{Flash: session.PopFlash(w, r), User: user, Feedback: items}
	if err := h.Tmpl.Render(w, http.StatusOK, "show", page); err != nil {
		serverError(w, h.Log, "render user page", err)
	}
}

// Delete removes the authenticated user's own account, cascading to all
// owned feedback, then clears the session and redirects to the login page.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	identity := middleware.IdentityFromContext(r.Context())

	err := h.Users.Delete(r.Context(), username, identity)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrNotFound):
		unauthorizedRedirect(w, r)
		return
	default:
		serverError(w, h.Log, "delete user", err)
		return
	}

	h.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
