package gen

import (
	"bytes"
	"fmt"
	"io/fs"
	"text/template"

	"github.com/syssam/pgentity"
)

// Renderer renders a named template with the given data.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// TemplateRenderer is a Renderer backed by text/template.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses the templates matching patterns in fsys.
// Templates are addressed by their base file name.
func NewTemplateRenderer(fsys fs.FS, patterns ...string) (*TemplateRenderer, error) {
	tmpl, err := template.New("pgentity").
		Funcs(Funcs).
		Option("missingkey=error").
		ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// MustTemplateRenderer is like NewTemplateRenderer but panics on error.
// It is meant for templates embedded at build time.
func MustTemplateRenderer(fsys fs.FS, patterns ...string) *TemplateRenderer {
	r, err := NewTemplateRenderer(fsys, patterns...)
	if err != nil {
		panic(err)
	}
	return r
}

// Render implements Renderer. Failures are reported as *pgentity.RenderError.
func (r *TemplateRenderer) Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		var table string
		if e, ok := data.(*Entity); ok {
			table = e.TableName
		}
		return nil, pgentity.NewRenderError(name, table, err)
	}
	return buf.Bytes(), nil
}

// RenderFunc is an adapter to allow the use of ordinary functions as Renderer.
type RenderFunc func(name string, data any) ([]byte, error)

// Render calls f(name, data).
func (f RenderFunc) Render(name string, data any) ([]byte, error) {
	return f(name, data)
}
