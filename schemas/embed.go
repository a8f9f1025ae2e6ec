// Package schemas embeds the JSON Schemas for profiles, analyses, tailored resumes and keyword tables.
package schemas

import "embed"

// Schema file names.
const (
	UserProfile    = "user_profile.schema.json"
	JobAnalysis    = "job_analysis.schema.json"
	TailoredResume = "tailored_resume.schema.json"
	KeywordTable   = "keyword_table.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the named schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every embedded schema.
func Names() []string {
	return []string{UserProfile, JobAnalysis, TailoredResume, KeywordTable}
}
