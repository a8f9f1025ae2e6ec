package skills

import (
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrioritize_ExactMatchBonus(t *testing.T) {
	scores := types.NewKeywordScores()
	scores.Set("sql", 0.8)
	scores.Set("agile", 1.0)

	got := Prioritize([]string{"Public Speaking", "Agile Coaching", "SQL", "Agile"}, scores, DefaultExactMatchBonus)

	assert.Equal(t, []string{"Agile", "SQL", "Public Speaking", "Agile Coaching"}, got)
}

func TestScoreSkills_BaseScorePlusBonus(t *testing.T) {
	scores := types.NewKeywordScores()
	scores.Set("sql", 0.8)

	scored := ScoreSkills([]string{"Excel", "SQL"}, scores, DefaultExactMatchBonus)
	require.Len(t, scored, 2)

	assert.Equal(t, "SQL", scored[0].Skill)
	assert.InDelta(t, 2.8, scored[0].Score, 1e-9)
	assert.True(t, scored[0].ExactMatch)
	assert.Equal(t, "Excel", scored[1].Skill)
	assert.Zero(t, scored[1].Score)
	assert.False(t, scored[1].ExactMatch)
}

func TestPrioritize_ZeroScoreKeepsKeywordPresence(t *testing.T) {
	// a keyword with a zero weight still earns the exact-match bonus
	scores := types.NewKeywordScores()
	scores.Set("figma", 0)

	got := Prioritize([]string{"Sketch", "Figma"}, scores, DefaultExactMatchBonus)
	assert.Equal(t, []string{"Figma", "Sketch"}, got)
}

func TestPrioritize_AllZeroPreservesOrder(t *testing.T) {
	input := []string{"Roadmapping", "SQL", "Jira", "Figma", "Mentoring"}

	got := Prioritize(input, types.NewKeywordScores(), DefaultExactMatchBonus)
	assert.Equal(t, input, got)
	got = Prioritize(input, nil, DefaultExactMatchBonus)
	assert.Equal(t, input, got)
}

func TestPrioritize_DoesNotModifyInput(t *testing.T) {
	scores := types.NewKeywordScores()
	scores.Set("jira", 0.8)
	input := []string{"Excel", "Jira"}

	_ = Prioritize(input, scores, DefaultExactMatchBonus)
	assert.Equal(t, []string{"Excel", "Jira"}, input)
}

func TestTop(t *testing.T) {
	skills := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, Top(skills, 2))
	assert.Equal(t, skills, Top(skills, 15))
	assert.Empty(t, Top(skills, 0))
	assert.Equal(t, skills, Top(skills, -1))
}
