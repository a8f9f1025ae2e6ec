package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/types"
)

func validProfile() *types.UserProfile {
	return &types.UserProfile{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "555-123-4567",
		Summary: "Product manager with a decade of B2B SaaS experience.",
		Experiences: []types.Experience{
			{Title: "Senior Product Manager", Company: "Beta", Achievements: []string{"Shipped the payments roadmap"}},
			{Title: "Product Manager", Company: "Gamma", Achievements: []string{"Grew activation by 20%"}},
		},
		Education: []types.Education{{Degree: "MBA", Institution: "State University"}},
		Skills:    []string{"Agile", "SQL", "Roadmapping", "Jira", "Figma"},
	}
}

func TestCheckProfile_Valid(t *testing.T) {
	assert.Empty(t, CheckProfile(validProfile(), DefaultRules()))
	assert.NoError(t, ValidateProfile(validProfile(), DefaultRules()))
}

func TestCheckProfile_Issues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.UserProfile)
		want   []string
	}{
		{
			name:   "missing name and phone",
			mutate: func(p *types.UserProfile) { p.Name = ""; p.Phone = "  " },
			want:   []string{"Missing required field: name", "Missing required field: phone"},
		},
		{
			name:   "whitespace-only summary",
			mutate: func(p *types.UserProfile) { p.Summary = "\t\n " },
			want:   []string{"Missing required field: summary"},
		},
		{
			name:   "too few experiences",
			mutate: func(p *types.UserProfile) { p.Experiences = p.Experiences[:1] },
			want:   []string{"At least 2 experiences required"},
		},
		{
			name:   "no skills",
			mutate: func(p *types.UserProfile) { p.Skills = nil },
			want:   []string{"Missing required field: skills", "At least 5 skills required"},
		},
		{
			name:   "long summary",
			mutate: func(p *types.UserProfile) { p.Summary = strings.Repeat("word ", 101) },
			want:   []string{"Summary too long: 101 words (max: 100)"},
		},
		{
			name: "long achievement",
			mutate: func(p *types.UserProfile) {
				p.Experiences[1].Achievements = append(p.Experiences[1].Achievements, strings.Repeat("x ", 26))
			},
			want: []string{"Experience 2, achievement 2 too long: 26 words"},
		},
		{
			name:   "invalid email",
			mutate: func(p *types.UserProfile) { p.Email = "not-an-email" },
			want:   []string{"Invalid field Email: failed email check"},
		},
		{
			name:   "experience without company",
			mutate: func(p *types.UserProfile) { p.Experiences[0].Company = "" },
			want:   []string{"Invalid field Experiences[0].Company: failed required check"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := validProfile()
			tt.mutate(profile)
			assert.Equal(t, tt.want, CheckProfile(profile, DefaultRules()))
		})
	}
}

func TestCheckProfile_CustomRules(t *testing.T) {
	rules := Rules{RequiredFields: []string{"linkedin"}, MaxSummaryWords: 5, MaxAchievementWords: 25}
	issues := CheckProfile(validProfile(), rules)
	assert.Equal(t, []string{
		"Missing required field: linkedin",
		"Summary too long: 9 words (max: 5)",
	}, issues)
}

func TestCheckProfile_Nil(t *testing.T) {
	assert.Equal(t, []string{"Profile is empty"}, CheckProfile(nil, DefaultRules()))
}

func TestValidateProfile_ReturnsProfileError(t *testing.T) {
	profile := validProfile()
	profile.Name = ""
	profile.Skills = profile.Skills[:2]

	err := ValidateProfile(profile, DefaultRules())
	require.Error(t, err)

	var profileErr *ProfileError
	require.True(t, errors.As(err, &profileErr))
	assert.Len(t, profileErr.Issues, 2)
	assert.Contains(t, err.Error(), "2 issues")
	assert.Contains(t, err.Error(), "Missing required field: name")
}

func TestRules_Validate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())

	rules := DefaultRules()
	rules.RequiredFields = append(rules.RequiredFields, "hobbies")
	assert.ErrorContains(t, rules.Validate(), "hobbies")

	rules = DefaultRules()
	rules.MinSkills = -1
	assert.Error(t, rules.Validate())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Message: "bad input", Cause: cause}
	assert.Equal(t, "validation error: bad input: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}
