package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

// requirementHeadings introduce a requirements block. Each match starts a
// section that runs until the next heading-like line, a blank tail or the
// end of the text.
var requirementHeadings = []*regexp.Regexp{
	regexp.MustCompile(`(?i)requirements?:?\s*`),
	regexp.MustCompile(`(?i)qualifications?:?\s*`),
	regexp.MustCompile(`(?is)what you.{0,20}need:?\s*`),
	regexp.MustCompile(`(?i)you should have:?\s*`),
}

// itemSeparator splits a section on bullet characters and numbered-list markers.
// Hyphens split anywhere, so hyphenated words are broken into separate items.
var itemSeparator = regexp.MustCompile(`(?m)[•\-\*]\s*|^\s*\d+\.?\s*`)

// ExtractRequirements returns at most ten requirement snippets from a job
// description, ordered by heading pattern and then by position in the text.
// Overlapping sections found by different headings are not de-duplicated.
func ExtractRequirements(jobText string) []string {
	requirements := []string{}
	for _, heading := range requirementHeadings {
		for _, section := range findSections(jobText, heading) {
			for _, item := range itemSeparator.Split(section, -1) {
				if item = strings.TrimSpace(item); item != "" {
					requirements = append(requirements, item)
				}
			}
		}
	}
	if len(requirements) > MaxRequirements {
		requirements = requirements[:MaxRequirements]
	}
	return requirements
}

// findSections returns the trimmed text following every non-overlapping match
// of heading. Scanning resumes at the end of each captured section.
func findSections(text string, heading *regexp.Regexp) []string {
	var sections []string
	pos := 0
	for pos < len(text) {
		loc := heading.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[1]
		end := sectionEnd(text, start)
		sections = append(sections, strings.TrimSpace(text[start:end]))
		if end <= pos {
			break
		}
		pos = end
	}
	return sections
}

// sectionEnd returns the index of the first newline after start that is
// followed by only whitespace, or by a line starting with a letter when a
// colon appears anywhere after that letter. Without either it returns len(text).
func sectionEnd(text string, start int) int {
	lastColon := strings.LastIndexByte(text, ':')
	for i := start; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		j := i + 1
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		if j == len(text) {
			return i
		}
		if isASCIILetter(text[j]) && lastColon > j {
			return i
		}
	}
	return len(text)
}

func isSpace(b byte) bool {
	return unicode.IsSpace(rune(b))
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
