package profile

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Normalize returns a cleaned copy of p: text fields are trimmed, empty
// achievements are dropped and skill lists are canonicalized and de-duplicated.
// The input profile is not modified.
func Normalize(p *types.UserProfile) *types.UserProfile {
	out := &types.UserProfile{
		Name:           strings.TrimSpace(p.Name),
		Email:          strings.TrimSpace(p.Email),
		Phone:          strings.TrimSpace(p.Phone),
		LinkedIn:       strings.TrimSpace(p.LinkedIn),
		Location:       strings.TrimSpace(p.Location),
		Summary:        strings.Join(strings.Fields(p.Summary), " "),
		Skills:         parsing.NormalizeSkills(p.Skills),
		Certifications: trimAll(p.Certifications),
		Languages:      trimAll(p.Languages),
	}

	out.Experiences = make([]types.Experience, len(p.Experiences))
	for i, exp := range p.Experiences {
		out.Experiences[i] = types.Experience{
			Title:        strings.TrimSpace(exp.Title),
			Company:      strings.TrimSpace(exp.Company),
			Duration:     strings.TrimSpace(exp.Duration),
			Achievements: trimAll(exp.Achievements),
			Skills:       parsing.NormalizeSkills(exp.Skills),
		}
	}

	out.Education = make([]types.Education, len(p.Education))
	for i, edu := range p.Education {
		out.Education[i] = types.Education{
			Degree:      strings.TrimSpace(edu.Degree),
			Institution: strings.TrimSpace(edu.Institution),
			Year:        strings.TrimSpace(edu.Year),
			Details:     trimAll(edu.Details),
		}
	}
	return out
}

// trimAll trims each item and drops empty ones.
func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
