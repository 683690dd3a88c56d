// Package http provides the HTTP handlers and routing for the feedboard
// web application: registration, login, and owner-guarded feedback pages.
package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/avolkovs/feedboard/internal/common"
	"github.com/avolkovs/feedboard/internal/forms"
	"github.com/avolkovs/feedboard/internal/middleware"
	"github.com/avolkovs/feedboard/internal/models"
	"github.com/avolkovs/feedboard/internal/session"
)

// loginErrorMsg deliberately does not distinguish an unknown username from a
// wrong password.
const loginErrorMsg = "Invalid username/password combo"

// flashLoginRequired is shown after redirecting an unauthorized request.
const flashLoginRequired = "You must be logged in to view!"

// UserService defines the account operations required by the HTTP handlers.
type UserService interface {
	// Register creates an account; common.ErrDuplicateUsername on conflict.
	Register(ctx context.Context, username, password, email, firstName, lastName string) (*models.User, error)
	// Authenticate returns the user on a credential match, (nil, nil) otherwise.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	// Get fetches an account; common.ErrNotFound if absent.
	Get(ctx context.Context, username string) (*models.User, error)
	// Delete removes the account and cascades to owned feedback, guarded by identity.
	Delete(ctx context.Context, username, identity string) error
}

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	// Users performs the underlying account operations.
	Users UserService
	// Sessions establishes and clears the client session.
	Sessions *session.Manager
	// Tmpl renders the HTML pages.
	Tmpl *Templates
	// Log is the request-scoped structured logger.
	Log *zap.Logger
}

// formValues echoes the submitted values for the named fields back to the
// template. Passwords are never echoed.
func formValues(v url.Values, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = v.Get(name)
	}
	return out
}

// unauthorizedRedirect flashes the login-required notice and sends the
// client to the anonymous entry point without leaking whether the resource
// exists.
func unauthorizedRedirect(w http.ResponseWriter, r *http.Request) {
	session.Flash(w, flashLoginRequired)
	http.Redirect(w, r, "/", http.StatusFound)
}

// serverError logs the failure and responds with a bare 500.
func serverError(w http.ResponseWriter, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// RegisterForm renders the registration form, or redirects to the user page
// if a session is already established.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if identity := middleware.IdentityFromContext(r.Context()); identity != "" {
		http.Redirect(w, r, "/users/"+identity, http.StatusFound)
		return
	}

	page := Page{Flash: session.PopFlash(w, r), Values: map[string]string{}, Errors: forms.Errors{}}
	if err := h.Tmpl.Render(w, http.StatusOK, "register", page); err != nil {
		serverError(w, h.Log, "render register", err)
	}
}

// Register handles a registration submission: validates the fields, creates
// the account, establishes the session, and redirects to the user page.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if identity := middleware.IdentityFromContext(r.Context()); identity != "" {
		http.Redirect(w, r, "/users/"+identity, http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, errs := forms.ParseRegister(r.PostForm)
	values := formValues(r.PostForm, "username", "email", "first_name", "last_name")
	if len(errs) > 0 {
		page := Page{Values: values, Errors: errs}
		if err := h.Tmpl.Render(w, http.StatusOK, "register", page); err != nil {
			serverError(w, h.Log, "render register", err)
		}
		return
	}

	user, err := h.Users.Register(r.Context(), form.Username, form.Password, form.Email, form.FirstName, form.LastName)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrDuplicateUsername):
		errs["username"] = "Username taken. Please pick another."
		page := Page{Values: values, Errors: errs}
		if err := h.Tmpl.Render(w, http.StatusOK, "register", page); err != nil {
			serverError(w, h.Log, "render register", err)
		}
		return
	default:
		serverError(w, h.Log, "register user", err)
		return
	}

	if err := h.Sessions.Establish(w, user.Username); err != nil {
		serverError(w, h.Log, "establish session", err)
		return
	}
	http.Redirect(w, r, "/users/"+user.Username, http.StatusFound)
}

// LoginForm renders the login form, or redirects to the user page if a
// session is already established.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if identity := middleware.IdentityFromContext(r.Context()); identity != "" {
		http.Redirect(w, r, "/users/"+identity, http.StatusFound)
		return
	}

	page := Page{Flash: session.PopFlash(w, r), Values: map[string]string{}, Errors: forms.Errors{}}
	if err := h.Tmpl.Render(w, http.StatusOK, "login", page); err != nil {
		serverError(w, h.Log, "render login", err)
	}
}

// Login handles a login submission. Both an unknown username and a wrong
// password re-render the form with the same generic message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if identity := middleware.IdentityFromContext(r.Context()); identity != "" {
		http.Redirect(w, r, "/users/"+identity, http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, errs := forms.ParseLogin(r.PostForm)
	values := formValues(r.PostForm, "username")
	if len(errs) > 0 {
		page := Page{Values: values, Errors: errs}
		if err := h.Tmpl.Render(w, http.StatusOK, "login", page); err != nil {
			serverError(w, h.Log, "render login", err)
		}
		return
	}

	user, err := h.Users.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		serverError(w, h.Log, "authenticate user", err)
		return
	}
	if user == nil {
		page := Page{Values: values, Errors: forms.Errors{}, FormError: loginErrorMsg}
		if err := h.Tmpl.Render(w, http.StatusOK, "login", page); err != nil {
			serverError(w, h.Log, "render login", err)
		}
		return
	}

	if err := h.Sessions.Establish(w, user.Username); err != nil {
		serverError(w, h.Log, "establish session", err)
		return
	}
	http.Redirect(w, r, "/users/"+user.Username, http.StatusFound)
}

// Logout clears the session and redirects to the login page. Logging out
// without a session is a harmless no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
