package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/avolkovs/feedboard/internal/forms"
	"github.com/avolkovs/feedboard/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists every renderable page; each pairs with the shared layout.
var pageNames = []string{"register", "login", "show", "new_feedback", "edit_feedback"}

// Templates holds the parsed page templates.
type Templates struct {
	pages map[string]*template.Template
}

// NewTemplates parses the embedded templates, pairing each page with the layout.
func NewTemplates() (*Templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Templates{pages: pages}, nil
}

// Page is the data passed to every template.
type Page struct {
	// Flash is a pending one-shot notice, if any.
	Flash string
	// User is the profile owner on the user page.
	User *models.User
	// Feedback is the owner's feedback list on the user page.
	Feedback []models.Feedback
	// Item is the feedback record being edited.
	Item *models.Feedback
	// Values echoes submitted form values back into the fields.
	Values map[string]string
	// Errors carries field-level validation messages.
	Errors forms.Errors
	// FormError is a single form-wide message (e.g. failed login).
	FormError string
}

// Render executes the named page into w with the given status code. The page
// is rendered to a buffer first so a template error never produces a half-
// written response.
func (t *Templates) Render(w http.ResponseWriter, status int, name string, data Page) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
