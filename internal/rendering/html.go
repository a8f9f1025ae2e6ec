package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/jonathan/resume-tailor/internal/types"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var (
	htmlTemplate     *template.Template
	htmlTemplateErr  error
	htmlTemplateOnce sync.Once
)

func loadHTMLTemplate() (*template.Template, error) {
	htmlTemplateOnce.Do(func() {
		htmlTemplate, htmlTemplateErr = template.New("resume.html.tmpl").
			Funcs(template.FuncMap{
				"score": func(f float64) string { return fmt.Sprintf("%.1f", f) },
			}).
			ParseFS(templateFS, "templates/resume.html.tmpl")
	})
	return htmlTemplate, htmlTemplateErr
}

type htmlData struct {
	Resume *types.TailoredResume
	Style  htmlStyle
	Opts   Options
}

// htmlStyle carries trusted CSS values from the built-in templates.
type htmlStyle struct {
	Name           string
	FontFamily     template.CSS
	FontSize       template.CSS
	LineSpacing    template.CSS
	Margins        template.CSS
	SectionSpacing template.CSS
}

func newHTMLStyle(t Template) htmlStyle {
	return htmlStyle{
		Name:           t.Name,
		FontFamily:     template.CSS(t.FontFamily),
		FontSize:       template.CSS(t.FontSize),
		LineSpacing:    template.CSS(t.LineSpacing),
		Margins:        template.CSS(t.Margins),
		SectionSpacing: template.CSS(t.SectionSpacing),
	}
}

// HTML renders a tailored resume as a standalone HTML page styled by opts.Template.
func HTML(resume *types.TailoredResume, opts Options) (string, error) {
	style, ok := LookupTemplate(opts.Template)
	if !ok {
		return "", &TemplateError{Message: fmt.Sprintf("unknown template %q", opts.Template)}
	}

	tmpl, err := loadHTMLTemplate()
	if err != nil {
		return "", &TemplateError{Message: "failed to parse HTML template", Cause: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, htmlData{Resume: resume, Style: newHTMLStyle(style), Opts: opts}); err != nil {
		return "", &TemplateError{Message: "failed to execute HTML template", Cause: err}
	}
	return buf.String(), nil
}
