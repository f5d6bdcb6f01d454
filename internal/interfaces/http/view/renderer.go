// Package view renders HTML pages from the embedded templates.
package view

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/armoryhq/backend/web"
)

// pages lists every page template parsed together with the layout
var pages = []string{
	"dashboard",
	"items",
	"item_detail",
	"item_form",
	"item_delete",
	"sellers",
	"seller_detail",
	"seller_form",
	"seller_delete",
	"listings",
	"listing_form",
	"slots",
	"not_found",
	"error",
}

// Renderer holds the parsed page templates
type Renderer struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

// FuncMap returns the template function map
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}
}

// NewRenderer parses all page templates with the shared layout
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	return NewRendererFromFS(web.TemplatesFS(), logger)
}

// NewRendererFromFS parses templates from the given file system
func NewRendererFromFS(tfs fs.FS, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	r := &Renderer{
		templates: make(map[string]*template.Template, len(pages)),
		logger:    logger,
	}

	for _, page := range pages {
		file := page + ".html"
		pageBytes, err := fs.ReadFile(tfs, file)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", file, err)
		}

		tmpl := template.New(file).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", file, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}

		r.templates[page] = tmpl
	}

	return r, nil
}

// Render writes a page with the given status and data bag
func (r *Renderer) Render(c *gin.Context, status int, name string, data inventoryapp.ViewData) {
	tmpl, ok := r.templates[name]
	if !ok {
		r.logger.Error("Unknown template", zap.String("template", name))
		c.String(http.StatusInternalServerError, "template not found")
		return
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Writer, "layout", data); err != nil {
		r.logger.Error("Failed to render template",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}
