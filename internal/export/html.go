// Package export renders a session snapshot (the simulation report and its
// follow-up turns) to shareable formats. It consumes plain strings from the
// core and feeds nothing back into it.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/MONSTERBOY110/Twindex/internal/conversation"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1c1e21; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 6px 12px; }
.turn { margin: 1rem 0; padding: 0.75rem 1rem; border-radius: 8px; }
.turn.user { background: #eef3fb; }
.turn.assistant { background: #f6f8fa; }
.turn img { max-width: 240px; display: block; margin-top: 0.5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Report}}
{{range .Turns}}<div class="turn {{.Role}}"><strong>{{.Role}}</strong>{{.Body}}{{if .Preview}}<img src="{{.Preview}}" alt="attachment">{{end}}</div>
{{end}}</body>
</html>
`

type pageData struct {
	Title  string
	Report template.HTML
	Turns  []turnData
}

type turnData struct {
	Role string
	Body template.HTML
	// Preview is a data URI; typed template.URL so html/template does not
	// reject the data: scheme.
	Preview template.URL
}

// newMarkdown builds the markdown renderer. GFM tables are required: the
// report's Risk_Comparison_Table arrives as a markdown table.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// HTML renders the report and conversation turns to a standalone HTML page.
func HTML(title, report string, turns []conversation.Turn) ([]byte, error) {
	md := newMarkdown()

	render := func(src string) (template.HTML, error) {
		var buf bytes.Buffer
		if err := md.Convert([]byte(src), &buf); err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		return template.HTML(buf.String()), nil
	}

	report = orPlaceholder(report)
	reportHTML, err := render(report)
	if err != nil {
		return nil, err
	}

	data := pageData{Title: title, Report: reportHTML}
	for _, t := range turns {
		body, err := render(t.Text)
		if err != nil {
			return nil, err
		}
		data.Turns = append(data.Turns, turnData{
			Role:    string(t.Role),
			Body:    body,
			Preview: template.URL(t.AttachmentPreview),
		})
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return out.Bytes(), nil
}

// WriteHTML renders and writes the page to path.
func WriteHTML(path, title, report string, turns []conversation.Turn) error {
	page, err := HTML(title, report, turns)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func orPlaceholder(report string) string {
	if report == "" {
		return "_No report produced yet._"
	}
	return report
}
