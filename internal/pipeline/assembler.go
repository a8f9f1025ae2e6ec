// Package pipeline provides the high-level orchestration for tailoring a resume to a job description.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/ranking"
	"github.com/jonathan/resume-tailor/internal/skills"
	"github.com/jonathan/resume-tailor/internal/summary"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Config holds the limits and bonuses used when assembling a tailored resume.
type Config struct {
	MaxExperiences int
	MaxSkills      int
	// MaxAchievementsPerRole trims achievement lists; 0 keeps all of them.
	MaxAchievementsPerRole int
	// MinRelevanceScore drops lower-scoring experiences; 0 keeps all of them.
	MinRelevanceScore float64
	TitleBonus        float64
	ExactMatchBonus   float64
}

// DefaultConfig returns the standard limits: five experiences and fifteen skills.
func DefaultConfig() Config {
	return Config{
		MaxExperiences:  5,
		MaxSkills:       15,
		TitleBonus:      ranking.DefaultOptions().TitleBonus,
		ExactMatchBonus: skills.DefaultExactMatchBonus,
	}
}

// Assembler composes analysis, ranking, summary optimization and skill
// prioritization into a tailored resume. It is safe for concurrent use.
type Assembler struct {
	analyzer *analysis.Analyzer
	config   Config
}

// NewAssembler creates an assembler using the given analyzer and config.
func NewAssembler(analyzer *analysis.Analyzer, config Config) *Assembler {
	return &Assembler{analyzer: analyzer, config: config}
}

// Analyzer returns the assembler's analyzer.
func (a *Assembler) Analyzer() *analysis.Analyzer {
	return a.analyzer
}

// Config returns the assembler's config.
func (a *Assembler) Config() Config {
	return a.config
}

// Tailor builds a tailored resume for jobText. The profile is only read.
func (a *Assembler) Tailor(profile *types.UserProfile, jobText string, focusAreas []string) *types.TailoredResume {
	jobAnalysis := a.analyzer.Analyze(jobText)
	return a.TailorWithAnalysis(profile, jobAnalysis, focusAreas)
}

// TailorWithAnalysis builds a tailored resume from an existing analysis.
func (a *Assembler) TailorWithAnalysis(profile *types.UserProfile, jobAnalysis *types.JobAnalysis, focusAreas []string) *types.TailoredResume {
	scores := jobAnalysis.KeywordScores

	rankOpts := ranking.DefaultOptions()
	rankOpts.TitleBonus = a.config.TitleBonus
	ranked := ranking.RankExperiences(profile.Experiences, scores, rankOpts)

	ranked, omitted := filterByRelevance(ranked, a.config.MinRelevanceScore)
	ranked = ranking.Top(ranked, a.config.MaxExperiences)
	if a.config.MaxAchievementsPerRole > 0 {
		for i := range ranked {
			if len(ranked[i].Achievements) > a.config.MaxAchievementsPerRole {
				ranked[i].Achievements = ranked[i].Achievements[:a.config.MaxAchievementsPerRole]
			}
		}
	}

	prioritized := skills.Top(skills.Prioritize(profile.Skills, scores, a.config.ExactMatchBonus), a.config.MaxSkills)

	notes := optimizationNotes(jobAnalysis)
	if omitted > 0 {
		notes = append(notes, fmt.Sprintf("Omitted %d experiences scoring below %.1f", omitted, a.config.MinRelevanceScore))
	}

	return &types.TailoredResume{
		PersonalInfo:      profile.PersonalInfo(),
		Summary:           summary.Optimize(profile.Summary, scores, focusAreas),
		Experiences:       ranked,
		Skills:            prioritized,
		Education:         copyEducation(profile.Education),
		Certifications:    cloneStrings(profile.Certifications),
		Languages:         cloneStrings(profile.Languages),
		JobAnalysis:       jobAnalysis,
		OptimizationNotes: notes,
	}
}

func filterByRelevance(ranked []types.ScoredExperience, minScore float64) ([]types.ScoredExperience, int) {
	if minScore <= 0 {
		return ranked, 0
	}
	kept := make([]types.ScoredExperience, 0, len(ranked))
	for _, r := range ranked {
		if r.RelevanceScore >= minScore {
			kept = append(kept, r)
		}
	}
	return kept, len(ranked) - len(kept)
}

// optimizationNotes explains how the resume was tailored.
func optimizationNotes(jobAnalysis *types.JobAnalysis) []string {
	notes := []string{
		fmt.Sprintf("Optimized for %d relevant PM keywords from job description", jobAnalysis.TotalKeywords()),
	}
	if top, ok := jobAnalysis.TopCategory(); ok {
		notes = append(notes, fmt.Sprintf("Emphasized %s based on job requirements", strings.ReplaceAll(top, "_", " ")))
	}
	return append(notes,
		"Reordered experiences by relevance score",
		"Prioritized skills matching job description",
	)
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyEducation(education []types.Education) []types.Education {
	out := make([]types.Education, len(education))
	for i, e := range education {
		e.Details = append([]string(nil), e.Details...)
		out[i] = e
	}
	return out
}
