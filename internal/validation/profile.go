package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Rules configures profile validation.
type Rules struct {
	RequiredFields      []string `json:"required_fields" yaml:"required_fields"`
	MinExperiences      int      `json:"min_experiences" yaml:"min_experiences"`
	MinSkills           int      `json:"min_skills" yaml:"min_skills"`
	MaxSummaryWords     int      `json:"max_summary_words" yaml:"max_summary_words"`
	MaxAchievementWords int      `json:"max_achievement_words" yaml:"max_achievement_words"`
}

// DefaultRules returns the standard profile rules.
func DefaultRules() Rules {
	return Rules{
		RequiredFields:      []string{"name", "email", "phone", "summary", "experiences", "skills"},
		MinExperiences:      2,
		MinSkills:           5,
		MaxSummaryWords:     100,
		MaxAchievementWords: 25,
	}
}

// Validate checks the rules themselves.
func (r Rules) Validate() error {
	for _, field := range r.RequiredFields {
		if _, ok := profileFields[field]; !ok {
			return fmt.Errorf("config error: unknown required profile field %q", field)
		}
	}
	if r.MinExperiences < 0 || r.MinSkills < 0 {
		return fmt.Errorf("config error: minimum experience and skill counts must be non-negative")
	}
	if r.MaxSummaryWords < 0 || r.MaxAchievementWords < 0 {
		return fmt.Errorf("config error: word limits must be non-negative")
	}
	return nil
}

// profileFields reports whether a profile field is present and non-empty.
// Whitespace-only strings count as missing.
var profileFields = map[string]func(*types.UserProfile) bool{
	"name":           func(p *types.UserProfile) bool { return strings.TrimSpace(p.Name) != "" },
	"email":          func(p *types.UserProfile) bool { return strings.TrimSpace(p.Email) != "" },
	"phone":          func(p *types.UserProfile) bool { return strings.TrimSpace(p.Phone) != "" },
	"linkedin":       func(p *types.UserProfile) bool { return strings.TrimSpace(p.LinkedIn) != "" },
	"location":       func(p *types.UserProfile) bool { return strings.TrimSpace(p.Location) != "" },
	"summary":        func(p *types.UserProfile) bool { return strings.TrimSpace(p.Summary) != "" },
	"experiences":    func(p *types.UserProfile) bool { return len(p.Experiences) > 0 },
	"education":      func(p *types.UserProfile) bool { return len(p.Education) > 0 },
	"skills":         func(p *types.UserProfile) bool { return len(p.Skills) > 0 },
	"certifications": func(p *types.UserProfile) bool { return len(p.Certifications) > 0 },
	"languages":      func(p *types.UserProfile) bool { return len(p.Languages) > 0 },
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func getValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator
}

// CheckProfile returns every rule violation in profile, in a stable order.
// An empty result means the profile is valid.
func CheckProfile(profile *types.UserProfile, rules Rules) []string {
	issues := []string{}
	if profile == nil {
		return append(issues, "Profile is empty")
	}

	for _, field := range rules.RequiredFields {
		present, ok := profileFields[field]
		if !ok || !present(profile) {
			issues = append(issues, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	if len(profile.Experiences) < rules.MinExperiences {
		issues = append(issues, fmt.Sprintf("At least %d experiences required", rules.MinExperiences))
	}
	if len(profile.Skills) < rules.MinSkills {
		issues = append(issues, fmt.Sprintf("At least %d skills required", rules.MinSkills))
	}

	if words := len(strings.Fields(profile.Summary)); words > rules.MaxSummaryWords {
		issues = append(issues, fmt.Sprintf("Summary too long: %d words (max: %d)", words, rules.MaxSummaryWords))
	}

	for i, exp := range profile.Experiences {
		for j, achievement := range exp.Achievements {
			if words := len(strings.Fields(achievement)); words > rules.MaxAchievementWords {
				issues = append(issues, fmt.Sprintf("Experience %d, achievement %d too long: %d words", i+1, j+1, words))
			}
		}
	}

	return append(issues, structIssues(profile)...)
}

// structIssues reports violations of the validate tags on the profile types.
func structIssues(profile *types.UserProfile) []string {
	err := getValidator().Struct(profile)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{fmt.Sprintf("Invalid profile: %v", err)}
	}

	issues := make([]string, 0, len(validationErrors))
	for _, ve := range validationErrors {
		field := strings.TrimPrefix(ve.Namespace(), "UserProfile.")
		issues = append(issues, fmt.Sprintf("Invalid field %s: failed %s check", field, ve.Tag()))
	}
	return issues
}

// ValidateProfile returns a *ProfileError listing every issue, or nil when the profile is valid.
func ValidateProfile(profile *types.UserProfile, rules Rules) error {
	if issues := CheckProfile(profile, rules); len(issues) > 0 {
		return &ProfileError{Issues: issues}
	}
	return nil
}
