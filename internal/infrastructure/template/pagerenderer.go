// Package template renders the server-side UI pages.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fleetdesk/internal/shared/logger"
)

//go:embed pages/*.html
var embedded embed.FS

const layoutFile = "layout.html"

// PageRenderer holds one parsed template set per page, each combined with the
// shared layout.
type PageRenderer struct {
	pages  map[string]*template.Template
	path   string
	logger logger.Interface
}

// NewPageRenderer creates a renderer. Files in overrideDir replace the
// embedded pages of the same name; an empty path uses the embedded set only.
func NewPageRenderer(overrideDir string, logger logger.Interface) *PageRenderer {
	return &PageRenderer{
		pages:  make(map[string]*template.Template),
		path:   overrideDir,
		logger: logger,
	}
}

// Load parses every page. It fails on a template syntax error.
func (r *PageRenderer) Load() error {
	sources, err := r.readSources()
	if err != nil {
		return err
	}

	layout, ok := sources[layoutFile]
	if !ok {
		return fmt.Errorf("page layout %s not found", layoutFile)
	}

	for name, content := range sources {
		if name == layoutFile {
			continue
		}

		page := strings.TrimSuffix(name, ".html")
		tmpl, err := template.New(page).Funcs(funcMap).Parse(layout)
		if err != nil {
			return fmt.Errorf("failed to parse layout for %s: %w", page, err)
		}
		if _, err := tmpl.Parse(content); err != nil {
			return fmt.Errorf("failed to parse page %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	r.logger.Infow("ui pages loaded", "count", len(r.pages))
	return nil
}

func (r *PageRenderer) readSources() (map[string]string, error) {
	sources := make(map[string]string)

	entries, err := fs.ReadDir(embedded, "pages")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded pages: %w", err)
	}
	for _, entry := range entries {
		content, err := fs.ReadFile(embedded, "pages/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded page %s: %w", entry.Name(), err)
		}
		sources[entry.Name()] = string(content)
	}

	if r.path == "" {
		return sources, nil
	}
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		r.logger.Warnw("templates directory not found, using embedded pages", "path", r.path)
		return sources, nil
	}

	matches, err := filepath.Glob(filepath.Join(r.path, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to list templates directory: %w", err)
	}
	for _, file := range matches {
		content, err := os.ReadFile(file)
		if err != nil {
			r.logger.Warnw("failed to read template file", "file", file, "error", err)
			continue
		}
		sources[filepath.Base(file)] = string(content)
		r.logger.Infow("loaded page override", "file", filepath.Base(file), "size", len(content))
	}

	return sources, nil
}

// Render executes the page into w. The page is rendered into a buffer first so
// a failing template never leaves a half-written response.
func (r *PageRenderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render page %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// HasPage reports whether page was loaded.
func (r *PageRenderer) HasPage(page string) bool {
	_, ok := r.pages[page]
	return ok
}

var funcMap = template.FuncMap{
	"datetime": func(v any) string {
		var t time.Time
		switch tv := v.(type) {
		case time.Time:
			t = tv
		case *time.Time:
			if tv == nil {
				return ""
			}
			t = *tv
		}
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}
