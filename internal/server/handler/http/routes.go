package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avolkovs/feedboard/internal/middleware"
	"github.com/avolkovs/feedboard/internal/session"
)

// NewRouter constructs the HTTP handler serving the application.
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs incoming requests
//  2. WithIdentity(sessions)     — resolves the session cookie into the
//     request context; handlers perform their own authorization checks
//
// Routes:
//
//	GET  /                               → redirect to /register
//	GET  /register, POST /register       → authHandler
//	GET  /login, POST /login             → authHandler
//	GET  /logout                         → authHandler.Logout
//	GET  /users/{username}               → userHandler.Show
//	POST /users/{username}/delete        → userHandler.Delete
//	GET  /users/{username}/feedback/new  → feedbackHandler.NewForm
//	POST /users/{username}/feedback/new  → feedbackHandler.Create
//	GET  /feedback/{id}/update           → feedbackHandler.EditForm
//	POST /feedback/{id}/update           → feedbackHandler.Update
//	POST /feedback/{id}/delete           → feedbackHandler.Delete
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	feedbackHandler *FeedbackHandler,
	sessions *session.Manager,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the session identity once per request
	r.Use(middleware.WithIdentity(sessions))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusFound)
	})

	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	r.Route("/users/{username}", func(r chi.Router) {
		r.Get("/", userHandler.Show)
		r.Post("/delete", userHandler.Delete)
		r.Get("/feedback/new", feedbackHandler.NewForm)
		r.Post("/feedback/new", feedbackHandler.Create)
	})

	r.Route("/feedback/{id}", func(r chi.Router) {
		r.Get("/update", feedbackHandler.EditForm)
		r.Post("/update", feedbackHandler.Update)
		r.Post("/delete", feedbackHandler.Delete)
	})

	return r
}
