package views

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html templates/*/*.html
var templateFS embed.FS

// Renderer serves full pages through echo and HTML fragments embedded
// in JSON responses through RenderString.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"deref": func(n *int) int {
			if n == nil {
				return 0
			}
			return *n
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"dateptr": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
	}

	templates, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html", "templates/*/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// RenderString executes the named template into a string for embedding
// in JSON envelopes.
func (r *Renderer) RenderString(name string, data interface{}) (string, error) {
	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
