// Package parsing provides helpers that pull facts out of job descriptions and resume text.
package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^\p{L}\p{N}_\s\-\.,\(\)\[\]/&\+%\$#@!\?]`)
)

// CleanText collapses whitespace and removes characters that interfere with parsing.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	return disallowed.ReplaceAllString(text, "")
}

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s*of\s*experience`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*experience`),
	regexp.MustCompile(`(\d+)\+?\s*yrs?\s*experience`),
	regexp.MustCompile(`experience.*?(\d+)\+?\s*years?`),
}

// ExtractYearsOfExperience returns the first "N years of experience" style figure in text.
func ExtractYearsOfExperience(text string) (int, bool) {
	lower := strings.ToLower(text)
	for _, pattern := range yearsPatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			if years, err := strconv.Atoi(m[1]); err == nil {
				return years, true
			}
		}
	}
	return 0, false
}

// SalaryRange is a yearly salary range in whole currency units.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var salaryPatterns = []struct {
	re        *regexp.Regexp
	thousands bool
}{
	{regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*)\s*-\s*\$(\d{1,3}(?:,\d{3})*)`), false},
	{regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*-\s*(\d{1,3}(?:,\d{3})*)\s*k`), true},
	{regexp.MustCompile(`(?i)\$(\d{1,3})k\s*-\s*\$(\d{1,3})k`), true},
}

// ExtractSalaryRange returns the first salary range in text. Ranges written with
// a "k" suffix are multiplied by 1000.
func ExtractSalaryRange(text string) (SalaryRange, bool) {
	for _, p := range salaryPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		lo, err1 := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		hi, err2 := strconv.Atoi(strings.ReplaceAll(m[2], ",", ""))
		if err1 != nil || err2 != nil {
			continue
		}
		if p.thousands {
			lo *= 1000
			hi *= 1000
		}
		return SalaryRange{Min: lo, Max: hi}, true
	}
	return SalaryRange{}, false
}

// TextSimilarity is the Jaccard similarity of the lowercase word sets of a and b.
func TextSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	wordsA := wordSet(a)
	wordsB := wordSet(b)

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

// FormatDuration formats an experience date range. An empty or "present" end
// date produces "<start> - Present".
func FormatDuration(start, end string) string {
	if end == "" || strings.EqualFold(end, "present") {
		return start + " - Present"
	}
	return start + " - " + end
}

var filenameUnsafe = regexp.MustCompile(`[^\p{L}\p{N}_\s\-]`)

// GenerateFilename builds a lowercase file name such as
// "resume_senior_pm_acme_20240131_0915" from its parts and the given time.
func GenerateFilename(base, jobTitle, company string, now time.Time) string {
	parts := []string{base}
	for _, part := range []string{jobTitle, company} {
		if part == "" {
			continue
		}
		clean := filenameUnsafe.ReplaceAllString(part, "")
		clean = whitespaceRun.ReplaceAllString(strings.TrimSpace(clean), "_")
		parts = append(parts, clean)
	}
	parts = append(parts, now.Format("20060102_1504"))
	return strings.ToLower(strings.Join(parts, "_"))
}

// ContactInfo holds contact details found in free text.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+1[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	}
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w\-]+`)
)

// ExtractContactInfo finds the first email, US phone number and LinkedIn profile in text.
func ExtractContactInfo(text string) ContactInfo {
	var info ContactInfo
	info.Email = emailPattern.FindString(text)
	for _, pattern := range phonePatterns {
		if phone := pattern.FindString(text); phone != "" {
			info.Phone = phone
			break
		}
	}
	if linkedin := linkedinPattern.FindString(text); linkedin != "" {
		info.LinkedIn = "https://" + linkedin
	}
	return info
}

// JobFacts bundles the facts the analyze report shows next to the keyword analysis.
type JobFacts struct {
	YearsOfExperience *int         `json:"years_of_experience,omitempty"`
	Salary            *SalaryRange `json:"salary,omitempty"`
	Contact           ContactInfo  `json:"contact"`
}

// ExtractJobFacts runs every extractor over a job description.
func ExtractJobFacts(text string) JobFacts {
	var facts JobFacts
	if years, ok := ExtractYearsOfExperience(text); ok {
		facts.YearsOfExperience = &years
	}
	if salary, ok := ExtractSalaryRange(text); ok {
		facts.Salary = &salary
	}
	facts.Contact = ExtractContactInfo(text)
	return facts
}
