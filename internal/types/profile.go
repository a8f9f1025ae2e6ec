// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// UserProfile is the candidate's complete resume source material.
// The tailoring pipeline only reads it; derived output lives in TailoredResume.
type UserProfile struct {
	Name           string       `json:"name" yaml:"name"`
	Email          string       `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone          string       `json:"phone" yaml:"phone"`
	LinkedIn       string       `json:"linkedin" yaml:"linkedin"`
	Location       string       `json:"location" yaml:"location"`
	Summary        string       `json:"summary" yaml:"summary"`
	Experiences    []Experience `json:"experiences" yaml:"experiences" validate:"dive"`
	Education      []Education  `json:"education" yaml:"education" validate:"dive"`
	Skills         []string     `json:"skills" yaml:"skills"`
	Certifications []string     `json:"certifications" yaml:"certifications"`
	Languages      []string     `json:"languages" yaml:"languages"`
}

// Experience represents a single work experience entry.
type Experience struct {
	Title        string   `json:"title" yaml:"title" validate:"required"`
	Company      string   `json:"company" yaml:"company" validate:"required"`
	Duration     string   `json:"duration" yaml:"duration"`
	Achievements []string `json:"achievements" yaml:"achievements"`
	Skills       []string `json:"skills" yaml:"skills"`
}

// Education represents a single education entry.
type Education struct {
	Degree      string   `json:"degree" yaml:"degree" validate:"required"`
	Institution string   `json:"institution" yaml:"institution" validate:"required"`
	Year        string   `json:"year" yaml:"year"`
	Details     []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// PersonalInfo is the identity snapshot copied into a tailored resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
}

// PersonalInfo returns the identity fields of the profile.
func (p *UserProfile) PersonalInfo() PersonalInfo {
	return PersonalInfo{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		LinkedIn: p.LinkedIn,
		Location: p.Location,
	}
}
