package ingestion

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v]+`)
	blankRun    = regexp.MustCompile(`\n{3,}`)
	bulletGlyph = regexp.MustCompile(`^[•·▪◦‣●]\s*`)
)

// now is replaced in tests.
var now = time.Now

// CleanText normalizes line endings and whitespace while keeping the line structure
// (headings, bullets, indentation) that requirement extraction depends on.
// Unicode bullet glyphs become "- " and runs of blank lines collapse to one.
func CleanText(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	body := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(body) == "" {
		return ""
	}
	indent := line[:len(line)-len(body)]
	indent = strings.ReplaceAll(indent, "\t", "    ")

	body = bulletGlyph.ReplaceAllString(body, "- ")
	body = innerSpace.ReplaceAllString(strings.TrimRight(body, " \t"), " ")
	return indent + body
}

// FromFile reads a job description file and returns its cleaned text.
// HTML files are reduced to their main content first.
func FromFile(path string) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, &Error{Source: path, Message: "file not found", Cause: err}
		}
		return "", nil, &Error{Source: path, Message: "failed to read file", Cause: err}
	}

	content := string(data)
	if isHTMLPath(path) {
		content, err = htmlToText(content, "")
		if err != nil {
			return "", nil, &Error{Source: path, Message: "failed to extract text from HTML", Cause: err}
		}
	}

	cleaned := CleanText(content)
	return cleaned, NewMetadata(cleaned, path, now()), nil
}

// FromText cleans job description text supplied directly, for example in an API request.
func FromText(text, source string) (string, *Metadata) {
	cleaned := CleanText(text)
	return cleaned, NewMetadata(cleaned, source, now())
}

func isHTMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
