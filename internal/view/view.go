// Package view renders the server-side HTML pages.
//
// Templates are embedded in the binary and parsed once by NewRenderer. Each
// page is executed through the shared layout in templates/layout.html.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/Masterminds/sprig/v3"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/storefront/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	// TemplateHome is the product list page served at "/".
	TemplateHome = "home.html"

	layoutTemplate = "layout.html"
)

// HomePage is the data for TemplateHome.
type HomePage struct {
	Products []model.Product
}

// Renderer implements echo.Renderer over the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses the layout together with every page template.
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list templates")
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		page := path.Base(name)
		if page == layoutTemplate {
			continue
		}

		tmpl, err := template.New(layoutTemplate).
			Funcs(sprig.FuncMap()).
			ParseFS(templateFS, "templates/"+layoutTemplate, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse template %s", page)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

// Render executes the named page into w.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("template %s not found", name)
	}

	if err := tmpl.ExecuteTemplate(w, layoutTemplate, data); err != nil {
		return errors.Wrapf(err, "failed to render template %s", name)
	}
	return nil
}

// StaticFS returns the embedded stylesheet directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
