// Package session associates an authenticated username with a client via a
// signed, HttpOnly cookie, and carries one-shot flash messages across
// redirects.
//
// The identity claim lives in an HS256 JWT held by the client; the server
// keeps no session state. Presence of a valid claim implies a prior
// successful authentication within the token's lifetime.
package session

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the session cookie holding the signed identity token.
	CookieName = "feedboard_session"
	// flashCookieName holds a one-shot notice shown after a redirect.
	flashCookieName = "feedboard_flash"
)

// Claims is the JWT payload: registered claims plus the username identity.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Manager issues, validates, and clears session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager that signs tokens with secret and issues
// sessions valid for ttl.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Establish records username as the authenticated identity for the client,
// overwriting any prior identity.
func (m *Manager) Establish(w http.ResponseWriter, username string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
		Username: username,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Identity returns the authenticated username for the request, or false if
// the client is anonymous, the token is tampered with, or it has expired.
func (m *Manager) Identity(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Username == "" {
		return "", false
	}

	return claims.Username, true
}

// Clear removes the identity claim. Clearing an absent session is a no-op,
// so logging out twice never errors.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash stores a one-shot message to be shown on the next rendered page.
func Flash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, clearing it so it is shown at
// most once. Returns the empty string if none is pending.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	msg, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}
