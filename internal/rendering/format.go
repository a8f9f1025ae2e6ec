package rendering

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Format is an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts a format name or a common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "html", "htm":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected markdown, json, html or pdf)", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Render exports resume in the given format. pdf is used for FormatPDF; nil means PDF.
func Render(ctx context.Context, resume *types.TailoredResume, format Format, opts Options, pdf PDFFunc) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(Markdown(resume, opts)), nil
	case FormatJSON:
		return JSON(resume, opts)
	case FormatHTML:
		html, err := HTML(resume, opts)
		return []byte(html), err
	case FormatPDF:
		html, err := HTML(resume, opts)
		if err != nil {
			return nil, err
		}
		if pdf == nil {
			pdf = PDF
		}
		return pdf(ctx, html)
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unsupported format %q", format)}
	}
}
