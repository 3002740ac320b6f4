package resources

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// LayoutTemplate is the entry point every page renders through.
const LayoutTemplate = "layout"

//go:embed templates/*.html
var embeddedFS embed.FS

// Templates is a reloadable set of HTML templates.
type Templates struct {
	mu      sync.RWMutex
	tmpl    *template.Template
	dir     string
	watcher *fsnotify.Watcher
	log     *slog.Logger
}

// NewEmbeddedTemplates returns the templates compiled into the binary.
func NewEmbeddedTemplates() (*Templates, error) {
	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return &Templates{tmpl: tmpl, log: slog.Default()}, nil
}

// NewTemplatesDirectory loads the templates in dir and reloads them when the
// directory changes. A reload that fails to parse keeps the previous set.
func NewTemplatesDirectory(
	dir string,
	logger *slog.Logger,
) (
	*Templates,
	error,
) {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Templates{dir: dir, log: logger}
	if err := t.Reload(); err != nil {
		return nil, err
	}

	watcher, err := watchDir(dir, func() {
		if err := t.Reload(); err != nil {
			logger.Warn("failed to reload templates", "dir", dir, "error", err)
		}
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start template watcher: %w", err)
	}
	t.watcher = watcher
	return t, nil
}

// Reload re-parses the templates directory. Embedded templates never change.
func (t *Templates) Reload() error {
	if t.dir == "" {
		return nil
	}

	tmpl, err := template.ParseGlob(filepath.Join(t.dir, "*.html"))
	if err != nil {
		return fmt.Errorf("failed to parse templates from '%s': %w", t.dir, err)
	}

	t.mu.Lock()
	t.tmpl = tmpl
	t.mu.Unlock()

	t.log.Info("loaded templates", "dir", t.dir)
	return nil
}

func (t *Templates) Render(
	name string,
	data any,
) (
	[]byte,
	error,
) {
	t.mu.RLock()
	tmpl := t.tmpl
	t.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close stops watching the templates directory.
func (t *Templates) Close() error {
	if t.watcher == nil {
		return nil
	}
	return t.watcher.Close()
}
