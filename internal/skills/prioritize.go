// Package skills provides functionality to order a candidate's skills by job relevance.
package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultExactMatchBonus is added when a skill is itself a scored keyword.
const DefaultExactMatchBonus = 2.0

// ScoreSkills scores every skill and returns them sorted by score, highest first.
// A skill whose lowercase form is a scored keyword gets that keyword's score plus
// exactMatchBonus. Ties keep input order.
func ScoreSkills(skills []string, scores *types.KeywordScores, exactMatchBonus float64) []types.ScoredSkill {
	scored := make([]types.ScoredSkill, 0, len(skills))
	for _, skill := range skills {
		score, exact := scores.Get(strings.ToLower(skill))
		if exact {
			score += exactMatchBonus
		}
		scored = append(scored, types.ScoredSkill{Skill: skill, Score: score, ExactMatch: exact})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Prioritize returns the skills reordered by relevance.
func Prioritize(skills []string, scores *types.KeywordScores, exactMatchBonus float64) []string {
	scored := ScoreSkills(skills, scores, exactMatchBonus)
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Skill
	}
	return out
}

// Top returns at most k skills. A negative k returns all of them.
func Top(skills []string, k int) []string {
	if k < 0 || k >= len(skills) {
		return skills
	}
	return skills[:k]
}
