package formatter

import (
	"bytes"
	"fmt"
	"html/template"
)

var pageTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Resume</title>
<style>
  body { font-family: {{.FontFamily}}, Arial, sans-serif; font-size: {{.FontSize}}px; line-height: {{.LineHeight}}; max-width: 800px; margin: 0 auto; padding: 40px; color: {{.TextColor}}; }
  .section { margin-bottom: 25px; }
  .section-title { font-size: {{.TitleSize}}px; font-weight: bold; color: {{.PrimaryColor}}; margin-bottom: 10px; text-transform: uppercase; border-bottom: 1px solid #bdc3c7; padding-bottom: 5px; }
  .job-title { font-weight: bold; color: {{.SecondaryColor}}; margin-top: 15px; }
  .contact-info { text-align: center; color: #7f8c8d; margin-bottom: 20px; }
  ul { margin: 10px 0; padding-left: 20px; }
  li { margin-bottom: 5px; }
  @media print { body { padding: 20px; } }
</style>
</head>
<body>
{{- range .Sections}}
<div class="section">
{{- if eq .Name "Contact"}}
<div class="contact-info">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
{{- else}}
<div class="section-title">{{.Name}}</div>
{{- if .Jobs}}
{{- range .Jobs}}
<div class="job-title">{{.Title}}</div>
{{- if .Details}}
<ul>{{range .Details}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- end}}
{{- else if .List}}
<ul>{{range .Lines}}<li>{{.}}</li>{{end}}</ul>
{{- else}}
<div>{{range .Items}}{{if .Bullet}}<li>{{.Text}}</li>{{else}}<p>{{.Text}}</p>{{end}}{{end}}</div>
{{- end}}
{{- end}}
</div>
{{- end}}
</body>
</html>
`))

type htmlItem struct {
	Text   string
	Bullet bool
}

type htmlJob struct {
	Title   string
	Details []string
}

type htmlSection struct {
	Name  string
	Lines []string
	List  bool
	Jobs  []htmlJob
	Items []htmlItem
}

type htmlPage struct {
	FontFamily     template.CSS
	FontSize       int
	TitleSize      int
	LineHeight     float64
	TextColor      template.CSS
	PrimaryColor   template.CSS
	SecondaryColor template.CSS
	Sections       []htmlSection
}

// FormatHTML renders the active sections as a standalone HTML page using the
// body font and colors from settings.
func FormatHTML(sections Sections, settings Settings) (string, error) {
	page := htmlPage{
		FontFamily:     template.CSS(cssQuote(settings.Fonts.Body.Family)),
		FontSize:       settings.Fonts.Body.Size,
		TitleSize:      settings.Fonts.Body.Size + 3,
		LineHeight:     settings.Spacing.Line,
		TextColor:      template.CSS(settings.Colors.Text),
		PrimaryColor:   template.CSS(settings.Colors.Primary),
		SecondaryColor: template.CSS(settings.Colors.Secondary),
	}

	for _, name := range settings.ActiveSections() {
		lines, ok := sections.Get(name)
		if !ok || len(lines) == 0 {
			continue
		}
		page.Sections = append(page.Sections, buildHTMLSection(name, lines))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("failed to render resume HTML: %w", err)
	}
	return buf.String(), nil
}

func buildHTMLSection(name string, lines []string) htmlSection {
	sec := htmlSection{Name: name, Lines: lines}
	switch name {
	case SectionContact:
	case SectionExperience:
		for _, job := range GroupJobs(lines) {
			j := htmlJob{Title: job[0]}
			for _, detail := range job[1:] {
				j.Details = append(j.Details, stripBullet(detail))
			}
			sec.Jobs = append(sec.Jobs, j)
		}
	case SectionSkills:
		sec.List = true
	default:
		for _, line := range lines {
			if isBullet(line) {
				sec.Items = append(sec.Items, htmlItem{Text: stripBullet(line), Bullet: true})
			} else {
				sec.Items = append(sec.Items, htmlItem{Text: line})
			}
		}
	}
	return sec
}

// cssQuote quotes a font family name for use in a CSS declaration.
func cssQuote(family string) string {
	clean := make([]rune, 0, len(family))
	for _, r := range family {
		if r == '\'' || r == '"' || r == ';' || r == '{' || r == '}' || r == '<' || r == '>' || r == '\\' {
			continue
		}
		clean = append(clean, r)
	}
	return "'" + string(clean) + "'"
}
