// Package view renders the HTML pages of the application.
// Templates are embedded at build time; html/template provides
// contextual auto-escaping for user-supplied content.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views renders named page templates.
type Views struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*Views, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Views{templates: tmpl}, nil
}

// Render writes the named template with the given data and status code.
// The page is rendered to a buffer first so a template fault yields a
// clean 500 instead of a half-written body.
func (v *Views) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
