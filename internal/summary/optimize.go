// Package summary rewrites a profile summary around a job's top keywords.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	topKeywordCount    = 8
	phraseKeywordCount = 5
)

// theme is appended when any top keyword contains one of its markers.
type theme struct {
	markers []string
	phrase  string
}

var themes = []theme{
	{markers: []string{"agile", "scrum"}, phrase: "agile methodologies"},
	{markers: []string{"data", "analytics"}, phrase: "data-driven decision making"},
	{markers: []string{"stakeholder", "cross-functional"}, phrase: "stakeholder management"},
}

// Optimize appends the job's top keywords and detected themes to base:
//
//	"{base} Specialized in {top 5 keywords}[ with proven expertise in {themes}]."
//
// Focus areas that are not already among the listed keywords are added after
// them inside the "Specialized in" clause. Themes come from the top 8 keywords only.
func Optimize(base string, scores *types.KeywordScores, focusAreas []string) string {
	top := TopKeywords(scores, topKeywordCount)

	listed := top
	if len(listed) > phraseKeywordCount {
		listed = listed[:phraseKeywordCount]
	}
	listed = appendFocusAreas(append([]string(nil), listed...), focusAreas)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Specialized in %s", base, strings.Join(listed, ", "))
	if matched := Themes(top); len(matched) > 0 {
		fmt.Fprintf(&sb, " with proven expertise in %s", strings.Join(matched, ", "))
	}
	sb.WriteString(".")
	return sb.String()
}

// TopKeywords returns up to n keywords by score, highest first.
// Ties keep score-map insertion order.
func TopKeywords(scores *types.KeywordScores, n int) []string {
	keys := scores.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return scores.Score(keys[i]) > scores.Score(keys[j])
	})
	if n >= 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Themes returns the theme phrases matched by the keywords, in fixed order.
func Themes(keywords []string) []string {
	var matched []string
	for _, th := range themes {
		if anyContains(keywords, th.markers) {
			matched = append(matched, th.phrase)
		}
	}
	return matched
}

func anyContains(keywords, markers []string) bool {
	for _, kw := range keywords {
		for _, m := range markers {
			if strings.Contains(kw, m) {
				return true
			}
		}
	}
	return false
}

func appendFocusAreas(listed, focusAreas []string) []string {
	seen := make(map[string]bool, len(listed)+len(focusAreas))
	for _, kw := range listed {
		seen[strings.ToLower(kw)] = true
	}
	for _, area := range focusAreas {
		area = strings.TrimSpace(area)
		key := strings.ToLower(area)
		if area == "" || seen[key] {
			continue
		}
		seen[key] = true
		listed = append(listed, area)
	}
	return listed
}
