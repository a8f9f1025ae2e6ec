package pipeline

import (
	"fmt"
	"testing"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/keywords"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJob = `Product Manager, Growth

We are a Series B SaaS startup looking for a PM to own the growth roadmap.

Requirements:
- Agile delivery with Scrum teams, agile planning and agile reviews
- Strong SQL and analytics
- Stakeholder management across cross-functional teams

Benefits: remote
`

func testProfile() *types.UserProfile {
	return &types.UserProfile{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-123-4567",
		LinkedIn: "linkedin.com/in/janedoe",
		Location: "Austin, TX",
		Summary:  "Product leader with 8 years of experience.",
		Experiences: []types.Experience{
			{
				Title:        "Software Engineer",
				Company:      "Acme",
				Duration:     "2012 - 2015",
				Achievements: []string{"Built billing services"},
				Skills:       []string{"Go"},
			},
			{
				Title:        "Senior Product Manager",
				Company:      "Beta",
				Duration:     "2018 - Present",
				Achievements: []string{"Owned the growth roadmap", "Ran agile rituals with scrum teams"},
				Skills:       []string{"SQL", "Jira"},
			},
			{
				Title:        "Business Analyst",
				Company:      "Gamma",
				Duration:     "2015 - 2018",
				Achievements: []string{"Built analytics dashboards in SQL"},
				Skills:       []string{"Tableau"},
			},
		},
		Education: []types.Education{
			{Degree: "BS Computer Science", Institution: "State University", Year: "2012", Details: []string{"Honors"}},
		},
		Skills:         []string{"Public Speaking", "Jira", "SQL", "Agile", "Figma"},
		Certifications: []string{"CSPO"},
		Languages:      []string{"English"},
	}
}

func newTestAssembler(cfg Config) *Assembler {
	return NewAssembler(analysis.NewAnalyzer(keywords.DefaultTable()), cfg)
}

func TestTailor_ComposesResume(t *testing.T) {
	profile := testProfile()
	resume := newTestAssembler(DefaultConfig()).Tailor(profile, testJob, nil)

	assert.Equal(t, profile.PersonalInfo(), resume.PersonalInfo)

	require.Len(t, resume.Experiences, 3)
	assert.Equal(t, "Senior Product Manager", resume.Experiences[0].Title)
	assert.True(t, resume.Experiences[0].TitleBonus)
	assert.Equal(t, "Business Analyst", resume.Experiences[1].Title)
	assert.Equal(t, "Software Engineer", resume.Experiences[2].Title)

	assert.Equal(t, "Agile", resume.Skills[0])
	assert.Equal(t, "SQL", resume.Skills[1])
	assert.Equal(t, []string{"Agile", "SQL", "Public Speaking", "Jira", "Figma"}, resume.Skills)

	assert.Contains(t, resume.Summary, "Product leader with 8 years of experience. Specialized in agile, ")
	assert.Contains(t, resume.Summary, "agile methodologies")
	assert.Contains(t, resume.Summary, "data-driven decision making")

	assert.Equal(t, profile.Education, resume.Education)
	assert.Equal(t, []string{"CSPO"}, resume.Certifications)
	require.NotNil(t, resume.JobAnalysis)

	require.Len(t, resume.OptimizationNotes, 4)
	assert.Equal(t,
		fmt.Sprintf("Optimized for %d relevant PM keywords from job description", resume.JobAnalysis.TotalKeywords()),
		resume.OptimizationNotes[0])
	assert.Equal(t, "Emphasized core skills based on job requirements", resume.OptimizationNotes[1])
	assert.Equal(t, "Reordered experiences by relevance score", resume.OptimizationNotes[2])
	assert.Equal(t, "Prioritized skills matching job description", resume.OptimizationNotes[3])
}

func TestTailor_DoesNotMutateProfile(t *testing.T) {
	profile := testProfile()
	resume := newTestAssembler(DefaultConfig()).Tailor(profile, testJob, []string{"Payments"})

	resume.Experiences[0].Achievements[0] = "changed"
	resume.Education[0].Details[0] = "changed"
	resume.Certifications[0] = "changed"

	assert.Equal(t, testProfile(), profile)
}

func TestTailor_Idempotent(t *testing.T) {
	assembler := newTestAssembler(DefaultConfig())
	profile := testProfile()

	first := assembler.Tailor(profile, testJob, []string{"Growth"})
	second := assembler.Tailor(profile, testJob, []string{"Growth"})

	assert.Equal(t, first, second)
}

func TestTailor_TruncatesToConfiguredLimits(t *testing.T) {
	profile := testProfile()
	for i := 0; i < 6; i++ {
		profile.Experiences = append(profile.Experiences, types.Experience{Title: fmt.Sprintf("Role %d", i), Company: "Co"})
		profile.Skills = append(profile.Skills, fmt.Sprintf("Skill %d", i), fmt.Sprintf("Tool %d", i))
	}
	require.Len(t, profile.Experiences, 9)
	require.Len(t, profile.Skills, 17)

	resume := newTestAssembler(DefaultConfig()).Tailor(profile, testJob, nil)
	assert.Len(t, resume.Experiences, 5)
	assert.Len(t, resume.Skills, 15)

	cfg := DefaultConfig()
	cfg.MaxExperiences = 2
	cfg.MaxSkills = 3
	resume = newTestAssembler(cfg).Tailor(profile, testJob, nil)
	assert.Len(t, resume.Experiences, 2)
	assert.Len(t, resume.Skills, 3)
}

func TestTailor_EmptyJobDescription(t *testing.T) {
	profile := testProfile()
	resume := newTestAssembler(DefaultConfig()).Tailor(profile, "", nil)

	// only the title bonus separates the experiences
	assert.Equal(t, "Senior Product Manager", resume.Experiences[0].Title)
	assert.Equal(t, "Software Engineer", resume.Experiences[1].Title)
	assert.Equal(t, "Business Analyst", resume.Experiences[2].Title)
	assert.Equal(t, profile.Skills, resume.Skills)
	assert.Equal(t, "Product leader with 8 years of experience. Specialized in .", resume.Summary)
	assert.Equal(t, "Optimized for 0 relevant PM keywords from job description", resume.OptimizationNotes[0])
	assert.Equal(t, "Emphasized core skills based on job requirements", resume.OptimizationNotes[1])
}

func TestTailor_EmptyKeywordTable(t *testing.T) {
	assembler := NewAssembler(analysis.NewAnalyzer(keywords.New()), DefaultConfig())
	resume := assembler.Tailor(testProfile(), testJob, nil)

	assert.Equal(t, []string{
		"Optimized for 0 relevant PM keywords from job description",
		"Reordered experiences by relevance score",
		"Prioritized skills matching job description",
	}, resume.OptimizationNotes)
}

func TestTailor_MinRelevanceAndAchievementLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRelevanceScore = 5.0
	cfg.MaxAchievementsPerRole = 1

	resume := newTestAssembler(cfg).Tailor(testProfile(), testJob, nil)

	require.Len(t, resume.Experiences, 1)
	assert.Equal(t, "Senior Product Manager", resume.Experiences[0].Title)
	assert.Len(t, resume.Experiences[0].Achievements, 1)
	assert.Equal(t, "Omitted 2 experiences scoring below 5.0", resume.OptimizationNotes[len(resume.OptimizationNotes)-1])
}

func TestTailor_FocusAreas(t *testing.T) {
	resume := newTestAssembler(DefaultConfig()).Tailor(testProfile(), testJob, []string{"marketplace growth"})
	assert.Contains(t, resume.Summary, ", marketplace growth with proven expertise in")
}
