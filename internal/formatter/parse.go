// Package formatter provides functionality to turn a plain-text resume into
// consistently formatted text or HTML.
package formatter

import (
	"regexp"
	"strings"
)

// Section names recognised by Parse, in output order.
const (
	SectionContact        = "Contact"
	SectionSummary        = "Summary"
	SectionExperience     = "Experience"
	SectionEducation      = "Education"
	SectionSkills         = "Skills"
	SectionProjects       = "Projects"
	SectionCertifications = "Certifications"
	SectionAwards         = "Awards"
)

// AvailableSections lists every section in the order they are rendered.
func AvailableSections() []string {
	return []string{
		SectionContact, SectionSummary, SectionExperience, SectionEducation,
		SectionSkills, SectionProjects, SectionCertifications, SectionAwards,
	}
}

type headerPattern struct {
	section string
	pattern *regexp.Regexp
}

// Header detection is a prefix match on the lowercased line, so a line such as
// "Experienced leader" also starts the Experience section.
var headerPatterns = []headerPattern{
	{SectionContact, regexp.MustCompile(`^(contact|personal|info)`)},
	{SectionSummary, regexp.MustCompile(`^(summary|objective|profile)`)},
	{SectionExperience, regexp.MustCompile(`^(experience|work|employment|career)`)},
	{SectionEducation, regexp.MustCompile(`^(education|academic|school)`)},
	{SectionSkills, regexp.MustCompile(`^(skills|technical|competenc)`)},
	{SectionProjects, regexp.MustCompile(`^(projects|portfolio)`)},
	{SectionCertifications, regexp.MustCompile(`^(certification|certificate)`)},
	{SectionAwards, regexp.MustCompile(`^(awards|achievement|honor)`)},
}

var (
	pipeJobHeader = regexp.MustCompile(`^[A-Z].*\s+\|\s+.*\s+\|\s+\d{4}`)
	atJobHeader   = regexp.MustCompile(`^.*\s+at\s+.*\s+\(\d{4}`)
)

// Section is a named block of non-empty, trimmed lines.
type Section struct {
	Name  string
	Lines []string
}

// Sections is a parsed resume in order of first appearance.
type Sections []Section

// Get returns the lines of the named section.
func (s Sections) Get(name string) ([]string, bool) {
	for _, sec := range s {
		if sec.Name == name {
			return sec.Lines, true
		}
	}
	return nil, false
}

func (s Sections) index(name string) int {
	for i, sec := range s {
		if sec.Name == name {
			return i
		}
	}
	return -1
}

// Parse splits resume text into sections. Lines before the first header belong
// to Contact. A repeated header starts its section over.
func Parse(text string) Sections {
	var sections Sections
	current := -1

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name, ok := detectHeader(line); ok {
			current = sections.index(name)
			if current < 0 {
				sections = append(sections, Section{Name: name})
				current = len(sections) - 1
			} else {
				sections[current].Lines = nil
			}
			continue
		}

		target := current
		if target < 0 {
			target = sections.index(SectionContact)
			if target < 0 {
				sections = append(sections, Section{Name: SectionContact})
				target = len(sections) - 1
			}
		}
		sections[target].Lines = append(sections[target].Lines, line)
	}
	return sections
}

func detectHeader(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, h := range headerPatterns {
		if h.pattern.MatchString(lower) {
			return h.section, true
		}
	}
	return "", false
}

// IsJobHeader reports whether an experience line starts a new job entry, as in
// "Product Manager | Acme | 2020" or "Product Manager at Acme (2020 - 2023)".
func IsJobHeader(line string) bool {
	return pipeJobHeader.MatchString(line) || atJobHeader.MatchString(strings.ToLower(line))
}

// GroupJobs splits experience lines into job entries. Lines before the first
// header form their own entry.
func GroupJobs(lines []string) [][]string {
	var jobs [][]string
	var current []string
	for _, line := range lines {
		if IsJobHeader(line) && len(current) > 0 {
			jobs = append(jobs, current)
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		jobs = append(jobs, current)
	}
	return jobs
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-")
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "•-"))
}
