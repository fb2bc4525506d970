package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter renders the markdown report to a standalone HTML page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	var md bytes.Buffer
	writeMarkdown(&md, report)

	var body bytes.Buffer
	if err := markdownRenderer.Convert(md.Bytes(), &body); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{report.Title, template.HTML(body.String())}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
