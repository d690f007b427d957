package mdadapter

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{ .Title }}</title>
    <style>
        table { border-collapse: collapse; }
        th, td { border: 1px solid #ccc; padding: 4px 8px; }
        tr.tested { background: #e6ffed; }
        tr.untested { background: #ffeef0; }
    </style>
</head>
<body>
{{ .ContentHTML }}
</body>
</html>
`

type PageContext struct {
	Title       string
	ContentHTML template.HTML
}

type htmlRenderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

func NewHTMLRenderer() *htmlRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			NewTestedRowExtension(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	return &htmlRenderer{
		md:   md,
		tmpl: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Convert renders a markdown report as a standalone HTML page.
func (r *htmlRenderer) Convert(title string, src []byte, w io.Writer) error {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return fmt.Errorf("cannot convert markdown: %w", err)
	}

	if err := r.tmpl.Execute(w, &PageContext{Title: title, ContentHTML: template.HTML(buf.String())}); err != nil {
		return fmt.Errorf("cannot execute template: %w", err)
	}

	return nil
}
