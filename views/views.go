// Package views renders the public pages from the content document.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/shihabsss1/portfolio/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	PageHome       string = "home"
	PageGallery    string = "gallery"
	PageExperience string = "experience"
)

//go:embed templates/*.html
var templateFS embed.FS

type Page struct {
	Name    string
	Title   string
	Content models.SiteContent
	Year    int
}

// Renderer holds one parsed template set per page, each wrapping the shared
// layout.
type Renderer struct {
	pages map[string]*template.Template
	md    goldmark.Markdown
}

func New() (*Renderer, error) {
	r := &Renderer{
		pages: map[string]*template.Template{},
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
	}

	funcs := template.FuncMap{
		"markdown": r.markdown,
	}

	for _, name := range []string{PageHome, PageGallery, PageExperience} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("Could not parse %s template: %w", name, err)
		}

		r.pages[name] = t
	}

	return r, nil
}

// Render writes the named page for the given document.
func (r *Renderer) Render(w io.Writer, name string, c models.SiteContent) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("Unknown page '%s'.", name)
	}

	buf := &bytes.Buffer{}

	if err := t.ExecuteTemplate(buf, "layout.html", Page{
		Name:    name,
		Title:   c.Hero.Title,
		Content: c,
		Year:    time.Now().Year(),
	}); err != nil {
		return fmt.Errorf("Could not render %s page: %w", name, err)
	}

	_, err := buf.WriteTo(w)

	return err
}

// markdown converts text to HTML. Raw HTML in the input is dropped.
func (r *Renderer) markdown(s string) template.HTML {
	buf := &bytes.Buffer{}

	if err := r.md.Convert([]byte(s), buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s)) //#nosec G203
	}

	return template.HTML(buf.String()) //#nosec G203
}
