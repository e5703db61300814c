// Package web serves the server-rendered catalog UI. Pages are built from
// embedded html/template files, each paired with the shared layout.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds everything passed to a page template
type PageData struct {
	Title    string            // Page title for the <title> tag
	Location string            // Active navigation entry, "categories" or "products"
	Data     map[string]any    // Page-specific data
	Errors   map[string]string // Form field errors keyed by field name
}

// Renderer executes the embedded page templates
type Renderer struct {
	templates map[string]*template.Template
}

// fragments render without the layout
var fragments = map[string]bool{
	"subcategories": true,
}

var funcMap = template.FuncMap{
	// isSelected reports whether an optional id refers to id
	"isSelected": func(selected *int, id int) bool {
		return selected != nil && *selected == id
	},
	"navClass": func(current, target string) string {
		if current == target {
			return "nav-link active"
		}
		return "nav-link"
	},
}

// NewRenderer parses every page template from the embedded filesystem
func NewRenderer() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		file := e.Name()
		if e.IsDir() || file == "layout.html" {
			continue
		}
		name := strings.TrimSuffix(file, ".html")

		var tmpl *template.Template
		if fragments[name] {
			tmpl, err = template.New(file).Funcs(funcMap).ParseFS(templateFS, "templates/"+file)
		} else {
			tmpl, err = template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+file)
		}
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", file, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Page renders the named page with status. Nothing is written when the
// template fails to execute.
func (rn *Renderer) Page(w http.ResponseWriter, status int, name string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	execName := "layout.html"
	if fragments[name] {
		execName = name + ".html"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
