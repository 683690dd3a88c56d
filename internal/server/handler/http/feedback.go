package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avolkovs/feedboard/internal/common"
	"github.com/avolkovs/feedboard/internal/forms"
	"github.com/avolkovs/feedboard/internal/middleware"
)

// FeedbackHandler serves feedback creation, editing, and deletion. Every
// route is owner-guarded; failures redirect to the anonymous entry point.
type FeedbackHandler struct {
	// Feedback performs the underlying feedback operations.
	Feedback FeedbackService
	// Tmpl renders the HTML pages.
	Tmpl *Templates
	// Log is the structured logger.
	Log *zap.Logger
}

// NewForm renders the add-feedback form for the owner of the user page.
func (h *FeedbackHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	identity := middleware.IdentityFromContext(r.Context())
	if identity == "" || identity != username {
		unauthorizedRedirect(w, r)
		return
	}

	page := Page{Values: map[string]string{}, Errors: forms.Errors{}}
	if err := h.Tmpl.Render(w, http.StatusOK, "new_feedback", page); err != nil {
		serverError(w, h.Log, "render new feedback", err)
	}
}

// Create handles an add-feedback submission and redirects to the user page.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	identity := middleware.IdentityFromContext(r.Context())
	if identity == "" || identity != username {
		unauthorizedRedirect(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, errs := forms.ParseFeedback(r.PostForm)
	if len(errs) > 0 {
		page := Page{Values: formValues(r.PostForm, "title", "content"), Errors: errs}
		if err := h.Tmpl.Render(w, http.StatusOK, "new_feedback", page); err != nil {
			serverError(w, h.Log, "render new feedback", err)
		}
		return
	}

	fb, err := h.Feedback.Create(r.Context(), username, form.Title, form.Content)
	if err != nil {
		serverError(w, h.Log, "create feedback", err)
		return
	}
	http.Redirect(w, r, "/users/"+fb.Username, http.StatusFound)
}

// EditForm renders the edit form for a feedback record, prefilled with its
// current title and content. Only the owner may see it.
func (h *FeedbackHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := middleware.IdentityFromContext(r.Context())

	fb, err := h.Feedback.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			unauthorizedRedirect(w, r)
			return
		}
		serverError(w, h.Log, "get feedback", err)
		return
	}
	if identity == "" || identity != fb.Username {
		unauthorizedRedirect(w, r)
		return
	}

	page := Page{
		Item:   fb,
		Values: map[string]string{"title": fb.Title, "content": fb.Content},
		Errors: forms.Errors{},
	}
	if err := h.Tmpl.Render(w, http.StatusOK, "edit_feedback", page); err != nil {
		serverError(w, h.Log, "render edit feedback", err)
	}
}

// Update handles an edit submission. The ownership check is re-run inside
// the store transaction, so a session that went stale between the form
// render and the submit still cannot mutate someone else's record.
func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := middleware.IdentityFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, errs := forms.ParseFeedback(r.PostForm)
	if len(errs) > 0 {
		fb, err := h.Feedback.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				unauthorizedRedirect(w, r)
				return
			}
			serverError(w, h.Log, "get feedback", err)
			return
		}
		if identity == "" || identity != fb.Username {
			unauthorizedRedirect(w, r)
			return
		}
		page := Page{Item: fb, Values: formValues(r.PostForm, "title", "content"), Errors: errs}
		if err := h.Tmpl.Render(w, http.StatusOK, "edit_feedback", page); err != nil {
			serverError(w, h.Log, "render edit feedback", err)
		}
		return
	}

	err := h.Feedback.Update(r.Context(), id, identity, form.Title, form.Content)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrNotFound):
		unauthorizedRedirect(w, r)
		return
	default:
		serverError(w, h.Log, "update feedback", err)
		return
	}

	http.Redirect(w, r, "/users/"+identity, http.StatusFound)
}

// Delete removes a feedback record owned by the authenticated user and
// redirects back to their page.
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := middleware.IdentityFromContext(r.Context())

	err := h.Feedback.Delete(r.Context(), id, identity)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrNotFound):
		unauthorizedRedirect(w, r)
		return
	default:
		serverError(w, h.Log, "delete feedback", err)
		return
	}

	http.Redirect(w, r, "/users/"+identity, http.StatusFound)
}
