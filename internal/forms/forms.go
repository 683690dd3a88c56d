// Package forms parses and validates HTML form submissions into typed
// values, independent of any web framework. Each parser returns the typed
// form plus a field→message map; an empty map means the input is valid.
package forms

import (
	"net/url"
	"strings"
)

// Errors maps a form field name to its validation message.
type Errors map[string]string

const requiredMsg = "This field is required."

// Register carries the validated registration fields.
type Register struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Login carries the validated login fields.
type Login struct {
	Username string
	Password string
}

// Feedback carries the validated feedback fields.
type Feedback struct {
	Title   string
	Content string
}

func field(v url.Values, name string, errs Errors) string {
	val := strings.TrimSpace(v.Get(name))
	if val == "" {
		errs[name] = requiredMsg
	}
	return val
}

// ParseRegister validates a registration submission. All fields are required.
func ParseRegister(v url.Values) (Register, Errors) {
	errs := Errors{}
	form := Register{
		Username:  field(v, "username", errs),
		Password:  field(v, "password", errs),
		Email:     field(v, "email", errs),
		FirstName: field(v, "first_name", errs),
		LastName:  field(v, "last_name", errs),
	}
	return form, errs
}

// ParseLogin validates a login submission.
func ParseLogin(v url.Values) (Login, Errors) {
	errs := Errors{}
	form := Login{
		Username: field(v, "username", errs),
		Password: field(v, "password", errs),
	}
	return form, errs
}

// ParseFeedback validates a feedback submission.
func ParseFeedback(v url.Values) (Feedback, Errors) {
	errs := Errors{}
	form := Feedback{
		Title:   field(v, "title", errs),
		Content: field(v, "content", errs),
	}
	return form, errs
}
