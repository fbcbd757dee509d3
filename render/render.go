// Package render turns dashboard sections into sanitized HTML fragments.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"dashboard/domain"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizerUGC = bluemonday.UGCPolicy()

var (
	headerTmpl = template.Must(template.New("header").Parse(
		`<h1>{{.Title}}</h1>{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}`))
	navbarTmpl = template.Must(template.New("navbar").Parse(
		`<ul>{{range .Links}}<li><a href="{{.URL}}">{{.Label}}</a></li>{{end}}</ul>`))
	footerTmpl = template.Must(template.New("footer").Parse(
		`<p>Email: {{if .Email}}<a href="mailto:{{.Email}}">{{.Email}}</a>{{end}}</p><p>Phone: {{.Phone}}</p>`))
)

// Page is the view model of the dashboard preview. Title is plain text and
// is escaped by the page template.
type Page struct {
	Title  string
	Header template.HTML
	Navbar template.HTML
	Footer template.HTML
}

func NewPage(cfg domain.Configuration) Page {
	return Page{
		Title:  cfg.Header.Title,
		Header: Header(cfg.Header),
		Navbar: Navbar(cfg.Navbar),
		Footer: Footer(cfg.Footer),
	}
}

func Header(h domain.Header) template.HTML {
	return safe(headerTmpl, h)
}

func Navbar(n domain.Navbar) template.HTML {
	return safe(navbarTmpl, n)
}

// Footer renders the contact lines. The address is markdown so it can span
// several lines.
func Footer(f domain.Footer) template.HTML {
	contact := safe(footerTmpl, f)
	if strings.TrimSpace(f.Address) == "" {
		return contact
	}
	return contact + template.HTML(`<address>`) + safeMd(f.Address) + template.HTML(`</address>`)
}

func safe(t *template.Template, data any) template.HTML {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return template.HTML(sanitizerUGC.SanitizeBytes(buf.Bytes()))
}

func mdToHTML(md string) []byte {
	extensions := parser.CommonExtensions | parser.HardLineBreak | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	opts := html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank}
	return markdown.Render(doc, html.NewRenderer(opts))
}

func safeMd(content string) template.HTML {
	return template.HTML(sanitizerUGC.SanitizeBytes(mdToHTML(content)))
}
