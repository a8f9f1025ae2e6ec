package parsing

import "strings"

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":           "Go",
	"javascript":       "JavaScript",
	"js":               "JavaScript",
	"typescript":       "TypeScript",
	"k8s":              "Kubernetes",
	"kubernetes":       "Kubernetes",
	"sql":              "SQL",
	"jira":             "Jira",
	"confluence":       "Confluence",
	"figma":            "Figma",
	"tableau":          "Tableau",
	"okr":              "OKRs",
	"okrs":             "OKRs",
	"a/b testing":      "A/B Testing",
	"ab testing":       "A/B Testing",
	"scrum":            "Scrum",
	"agile":            "Agile",
	"product roadmap":  "Product Roadmap",
	"roadmapping":      "Roadmapping",
	"google analytics": "Google Analytics",
}

// NormalizeSkillName returns the canonical spelling of a skill. Unknown skills
// are trimmed and otherwise returned unchanged.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(whitespaceRun.ReplaceAllString(skillName, " "))
	if normalized == "" {
		return ""
	}
	if canonical, ok := skillNormalizations[strings.ToLower(normalized)]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkills normalizes every skill and drops empty and duplicate entries,
// keeping the first occurrence. Duplicates are detected case-insensitively.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		normalized := NormalizeSkillName(skill)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
