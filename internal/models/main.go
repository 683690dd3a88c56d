// Package models defines the core data structures for users and feedback.
package models

import "time"

// User represents a registered account.
type User struct {
	// Username is the unique login name and primary key.
	Username string
	// PasswordHash is the bcrypt digest of the password. Never the
	// plaintext, never logged.
	PasswordHash string
	// Email is the contact address supplied at registration.
	Email string
	// FirstName is the user's given name.
	FirstName string
	// LastName is the user's family name.
	LastName string
}

// Feedback is a note owned by exactly one user.
type Feedback struct {
	// ID is the unique identifier, assigned at creation.
	ID string
	// Title is the short heading of the note.
	Title string
	// Content is the note body.
	Content string
	// Username references the owning User. Immutable after creation.
	Username string
	// CreatedAt orders a user's feedback by insertion.
	CreatedAt time.Time
}
