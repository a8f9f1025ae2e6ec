package ranking

import (
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoresOf(pairs ...any) *types.KeywordScores {
	scores := types.NewKeywordScores()
	for i := 0; i < len(pairs); i += 2 {
		scores.Set(pairs[i].(string), pairs[i+1].(float64))
	}
	return scores
}

func TestRankExperiences_BasicRanking(t *testing.T) {
	scores := scoresOf("sql", 0.8, "roadmap", 2.0, "agile", 1.0)
	experiences := []types.Experience{
		{Title: "Data Analyst", Company: "Acme", Achievements: []string{"Wrote SQL reports"}},
		{Title: "Program Lead", Company: "Beta", Achievements: []string{"Owned the roadmap", "Ran agile ceremonies"}},
	}

	ranked := RankExperiences(experiences, scores, DefaultOptions())
	require.Len(t, ranked, 2)

	assert.Equal(t, "Program Lead", ranked[0].Title)
	assert.Equal(t, 3.0, ranked[0].RelevanceScore)
	assert.Equal(t, []string{"roadmap", "agile"}, ranked[0].MatchedKeywords)
	assert.Equal(t, "Data Analyst", ranked[1].Title)
	assert.Equal(t, 0.8, ranked[1].RelevanceScore)
}

func TestRankExperiences_ProductManagerTitleBonus(t *testing.T) {
	experiences := []types.Experience{
		{Title: "Software Engineer", Company: "Acme"},
		{Title: "Senior Product Manager", Company: "Beta"},
	}

	ranked := RankExperiences(experiences, types.NewKeywordScores(), DefaultOptions())
	require.Len(t, ranked, 2)

	assert.Equal(t, "Senior Product Manager", ranked[0].Title)
	assert.Equal(t, 5.0, ranked[0].RelevanceScore)
	assert.True(t, ranked[0].TitleBonus)
	assert.Equal(t, 0.0, ranked[1].RelevanceScore)
}

func TestRankExperiences_BonusAppliedOnce(t *testing.T) {
	// title contains both "product manager" and "pm"
	scored := ScoreExperience(types.Experience{Title: "PM / Product Manager"}, nil, DefaultOptions())
	assert.Equal(t, 5.0, scored.RelevanceScore)
}

func TestRankExperiences_PMSubstringFalsePositive(t *testing.T) {
	// Substring matching gives "Shipment Coordinator" the product manager bonus.
	scored := ScoreExperience(types.Experience{Title: "Shipment Coordinator"}, nil, DefaultOptions())
	assert.True(t, scored.TitleBonus)
	assert.Equal(t, 5.0, scored.RelevanceScore)
}

func TestRankExperiences_StableForTies(t *testing.T) {
	experiences := []types.Experience{
		{Title: "A", Company: "One"},
		{Title: "B", Company: "Two", Skills: []string{"SQL"}},
		{Title: "C", Company: "Three"},
		{Title: "D", Company: "Four", Skills: []string{"sql"}},
	}

	ranked := RankExperiences(experiences, scoresOf("sql", 0.8), DefaultOptions())
	titles := make([]string, len(ranked))
	for i, r := range ranked {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, titles)
}

func TestRankExperiences_ZeroScoresKeepInputOrder(t *testing.T) {
	experiences := []types.Experience{{Title: "Z"}, {Title: "Y"}, {Title: "X"}}

	ranked := RankExperiences(experiences, types.NewKeywordScores(), Options{})
	for i, r := range ranked {
		assert.Equal(t, experiences[i].Title, r.Title)
		assert.Zero(t, r.RelevanceScore)
	}
}

func TestRankExperiences_DoesNotMutateInput(t *testing.T) {
	experiences := []types.Experience{
		{Title: "Analyst", Achievements: []string{"Built dashboards"}},
		{Title: "Product Owner", Achievements: []string{"Groomed backlog"}},
	}
	original := []types.Experience{
		{Title: "Analyst", Achievements: []string{"Built dashboards"}},
		{Title: "Product Owner", Achievements: []string{"Groomed backlog"}},
	}

	ranked := RankExperiences(experiences, scoresOf("dashboards", 1.0), DefaultOptions())
	ranked[0].Achievements[0] = "changed"

	assert.Equal(t, original, experiences)
}

func TestRankExperiences_MatchesCompanyAndSkills(t *testing.T) {
	scores := scoresOf("fintech", 0.7, "jira", 0.8)
	scored := ScoreExperience(types.Experience{
		Title:   "Lead",
		Company: "Fintech Corp",
		Skills:  []string{"JIRA"},
	}, scores, DefaultOptions())

	assert.InDelta(t, 1.5, scored.RelevanceScore, 1e-9)
	assert.Equal(t, []string{"fintech", "jira"}, scored.MatchedKeywords)
}

func TestTop(t *testing.T) {
	ranked := []types.ScoredExperience{{}, {}, {}}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{name: "fewer than available", k: 2, want: 2},
		{name: "more than available", k: 5, want: 3},
		{name: "zero", k: 0, want: 0},
		{name: "negative keeps all", k: -1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Top(ranked, tt.k), tt.want)
		})
	}
}
