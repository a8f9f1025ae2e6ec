package rendering

import "sort"

// Markdown styles.
const (
	StyleGitHub = "github"
	StyleBasic  = "basic"
)

// Template names.
const (
	TemplateProfessional = "professional"
	TemplateModern       = "modern"
	TemplateCompact      = "compact"
)

// Template holds the page styling for HTML and PDF output.
type Template struct {
	Name           string
	FontFamily     string
	FontSize       string
	LineSpacing    string
	Margins        string
	SectionSpacing string
}

var templates = map[string]Template{
	TemplateProfessional: {
		Name:           TemplateProfessional,
		FontFamily:     "Arial, sans-serif",
		FontSize:       "11pt",
		LineSpacing:    "1.15",
		Margins:        "0.75in",
		SectionSpacing: "12pt",
	},
	TemplateModern: {
		Name:           TemplateModern,
		FontFamily:     "Calibri, sans-serif",
		FontSize:       "10.5pt",
		LineSpacing:    "1.1",
		Margins:        "0.5in",
		SectionSpacing: "10pt",
	},
	TemplateCompact: {
		Name:           TemplateCompact,
		FontFamily:     "'Times New Roman', serif",
		FontSize:       "10pt",
		LineSpacing:    "1.0",
		Margins:        "0.5in",
		SectionSpacing: "8pt",
	},
}

// LookupTemplate returns the named template.
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

// TemplateNames lists the available templates in sorted order.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options controls what the exporters include.
type Options struct {
	IncludeRelevanceScores   bool
	IncludeOptimizationNotes bool
	IncludeJobAnalysis       bool
	MarkdownStyle            string
	Template                 string
}

// DefaultOptions matches the default export configuration.
func DefaultOptions() Options {
	return Options{
		IncludeRelevanceScores:   true,
		IncludeOptimizationNotes: true,
		MarkdownStyle:            StyleGitHub,
		Template:                 TemplateProfessional,
	}
}
