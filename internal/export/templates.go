package export

import (
	"bytes"
	"html/template"
	"time"
)

// TemplateData holds the story fields rendered into the export document.
type TemplateData struct {
	Title      string
	Category   string
	AuthorName string
	CreatedAt  time.Time
	Content    string
	Comments   []TemplateComment
}

// TemplateComment holds one comment for template rendering.
type TemplateComment struct {
	AuthorName string
	Text       string
}

var storyTemplate = template.Must(template.New("story").Parse(storyTemplateHTML))

// RenderStoryHTML renders the story template with provided data.
func RenderStoryHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := storyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// The content is Arabic-first, so the document renders right-to-left.
const storyTemplateHTML = `<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: "Noto Naskh Arabic", "Amiri", serif; line-height: 2; max-width: 760px; margin: 2rem auto; }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
    .meta { color: #666; font-size: 0.9em; margin-bottom: 2rem; }
    .content { white-space: pre-wrap; font-size: 1.1em; }
    .comment { background: #f5f5f5; padding: 1rem; margin: 1rem 0; border-right: 3px solid #333; }
    .comment .author { font-weight: bold; margin-bottom: 0.25rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">{{.Category}} | {{.AuthorName}} | {{.CreatedAt.Format "2006-01-02"}}</div>
  <div class="content">{{.Content}}</div>
  {{if .Comments}}
  <h2>التعليقات</h2>
  {{range .Comments}}
  <div class="comment">
    <div class="author">{{.AuthorName}}</div>
    <div>{{.Text}}</div>
  </div>
  {{end}}
  {{end}}
</body>
</html>`
