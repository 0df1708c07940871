package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Template helper functions
var funcMap = template.FuncMap{
	"TitleCase": TitleCase,
}

// TitleCase converts a string to title case.
// e.g., "jane doe" -> "Jane Doe"
func TitleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	// Casers keep state between calls, so each call gets its own.
	return cases.Title(language.English).String(s)
}

// templates holds all parsed page templates.
// The key is the page path relative to the templates root,
// e.g. "index.html" or "games/games_list.html".
var (
	templates     map[string]*template.Template
	templatesOnce sync.Once
	templatesErr  error
)

// LoadTemplates parses every page template in fsys together with layout.html
// and all partials (files named _*.html). It should be called once at
// application startup; later calls return the first result.
func LoadTemplates(fsys fs.FS) error {
	templatesOnce.Do(func() {
		templates, templatesErr = parseTemplates(fsys)
	})
	return templatesErr
}

func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	const layoutFile = "layout.html"
	if _, err := fs.Stat(fsys, layoutFile); err != nil {
		return nil, fmt.Errorf("layout.html not found: %w", err)
	}

	var pageFiles, partialFiles []string
	for _, pattern := range []string{"*.html", "*/*.html"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error globbing templates %s: %w", pattern, err)
		}
		for _, file := range matches {
			switch {
			case file == layoutFile:
			case strings.HasPrefix(path.Base(file), "_"):
				partialFiles = append(partialFiles, file)
			default:
				pageFiles = append(pageFiles, file)
			}
		}
	}
	if len(pageFiles) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	parsed := make(map[string]*template.Template, len(pageFiles))
	for _, pageFile := range pageFiles {
		// Each page gets its own set so every page can define "content".
		filesToParse := append([]string{layoutFile, pageFile}, partialFiles...)
		tmpl, err := template.New(pageFile).Funcs(funcMap).ParseFS(fsys, filesToParse...)
		if err != nil {
			return nil, fmt.Errorf("error parsing page template %s with layout and partials: %w", pageFile, err)
		}
		// html/template escapes the whole tree on first execution, so a dry
		// run surfaces undefined {{template}} calls now instead of per request.
		if err := tmpl.ExecuteTemplate(io.Discard, "layout", map[string]interface{}{}); err != nil {
			return nil, fmt.Errorf("error checking page template %s: %w", pageFile, err)
		}
		parsed[pageFile] = tmpl
	}
	return parsed, nil
}

// RenderErrorPage renders a standardized error page using the error.html template.
func RenderErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, title string, message string) {
	data := map[string]interface{}{
		"Title":       fmt.Sprintf("Error %d - %s", statusCode, title),
		"StatusCode":  statusCode,
		"ErrorTitle":  title,
		"Message":     message,
		"CurrentYear": time.Now().Year(),
	}
	renderTemplate(w, r, statusCode, "error.html", data)
}

// RenderTemplate executes the named page template with a 200 status.
func RenderTemplate(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	renderTemplate(w, r, http.StatusOK, name, data)
}

// renderTemplate buffers the page so a template failure never sends a
// half-written body.
func renderTemplate(w http.ResponseWriter, r *http.Request, statusCode int, name string, data interface{}) {
	tmpl, ok := templates[name]
	if !ok {
		slog.ErrorContext(r.Context(), "template not found", "template", name, "available", getTemplateKeys())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.ErrorContext(r.Context(), "template execution failed", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
}

func getTemplateKeys() []string {
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
