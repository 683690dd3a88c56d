package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avolkovs/feedboard/internal/middleware"
)

// requestWithIdentity returns a copy of req carrying username as the
// authenticated identity, as the identity middleware would.
func requestWithIdentity(req *http.Request, username string) *http.Request {
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), username))
}

// withURLParam returns a copy of req with a chi route parameter set, for
// invoking handlers outside a router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
