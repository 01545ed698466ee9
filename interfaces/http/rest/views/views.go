package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"reflections/application/queries"
	"reflections/interfaces/http/rest/forms"
	"reflections/pkg/auth"
	"reflections/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names
const (
	PageReflectionForm = "reflection_form.html"
	PageReflection     = "reflection.html"
	PageReflections    = "reflections.html"
	PageLogin          = "login.html"
	PageError          = "error.html"
)

var pages = []string{PageReflectionForm, PageReflection, PageReflections, PageLogin, PageError}

// PageData is passed to every template
type PageData struct {
	Title string
	User  *auth.UserContext
	Flash string
	Data  interface{}
}

// FormPage is the data of the reflection form page
type FormPage struct {
	Heading     string
	Action      string
	SubmitLabel string
	Form        *forms.ReflectionForm
}

// ReflectionPage is the data of the reflection detail page
type ReflectionPage struct {
	Reflection queries.ReflectionView
	Comments   []queries.CommentView
}

// ReflectionsPage is the data of the list page
type ReflectionsPage struct {
	Reflections []queries.ReflectionView
}

// LoginPage is the data of the development login page
type LoginPage struct {
	Next  string
	Error string
}

// ErrorPage is the data of the error page
type ErrorPage struct {
	Status  int
	Message string
}

// Renderer renders the embedded HTML templates
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return utils.FormatDisplay(t) },
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// Render executes page into w with the given status. Output is buffered
// so a failing template never sends a partial page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderError renders the error page
func (r *Renderer) RenderError(w http.ResponseWriter, status int, title, message string) error {
	return r.Render(w, status, PageError, PageData{
		Title: title,
		Data:  ErrorPage{Status: status, Message: message},
	})
}
