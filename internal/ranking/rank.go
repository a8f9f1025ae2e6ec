// Package ranking provides functionality to rank work experiences against job keyword scores.
package ranking

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Options controls experience scoring.
type Options struct {
	// TitleBonus is added when the lowercased title contains any of TitleTerms.
	TitleBonus float64
	TitleTerms []string
}

// DefaultOptions returns the product-manager title bonus settings.
func DefaultOptions() Options {
	return Options{
		TitleBonus: 5.0,
		TitleTerms: []string{"product manager", "product owner", "pm"},
	}
}

// RankExperiences scores each experience against the keyword scores and returns
// them sorted by relevance, highest first. Ties keep input order.
// The input slice and its experiences are not modified.
func RankExperiences(experiences []types.Experience, scores *types.KeywordScores, opts Options) []types.ScoredExperience {
	ranked := make([]types.ScoredExperience, 0, len(experiences))
	for _, exp := range experiences {
		ranked = append(ranked, ScoreExperience(exp, scores, opts))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	return ranked
}

// ScoreExperience computes the relevance score of a single experience.
func ScoreExperience(exp types.Experience, scores *types.KeywordScores, opts Options) types.ScoredExperience {
	text := experienceText(exp)

	scored := types.ScoredExperience{Experience: copyExperience(exp)}
	for _, keyword := range scores.Keys() {
		// Simple substring matching: "pm" also matches inside "shipment"
		if strings.Contains(text, keyword) {
			scored.RelevanceScore += scores.Score(keyword)
			scored.MatchedKeywords = append(scored.MatchedKeywords, keyword)
		}
	}

	title := strings.ToLower(exp.Title)
	for _, term := range opts.TitleTerms {
		if strings.Contains(title, term) {
			scored.RelevanceScore += opts.TitleBonus
			scored.TitleBonus = true
			break
		}
	}
	return scored
}

// experienceText joins the searchable fields of an experience in lowercase.
func experienceText(exp types.Experience) string {
	parts := []string{exp.Title, exp.Company, strings.Join(exp.Achievements, " "), strings.Join(exp.Skills, " ")}
	return strings.ToLower(strings.Join(parts, " "))
}

func copyExperience(exp types.Experience) types.Experience {
	exp.Achievements = append([]string(nil), exp.Achievements...)
	exp.Skills = append([]string(nil), exp.Skills...)
	return exp
}

// Top returns at most k experiences from the front of ranked.
// A negative k returns all of them.
func Top(ranked []types.ScoredExperience, k int) []types.ScoredExperience {
	if k < 0 || k >= len(ranked) {
		return ranked
	}
	return ranked[:k]
}
