package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the resume_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_agent ./cmd/resume_agent'", binaryPath)
	}

	return binaryPath
}

// writeTestFile writes content to name inside a fresh temp directory.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

const testProfileJSON = `{
  "name": "Jane Doe",
  "email": "jane@example.com",
  "phone": "555-123-4567",
  "summary": "Product manager with a track record of shipping data products.",
  "experiences": [
    {
      "title": "Senior Product Manager",
      "company": "Acme",
      "duration": "2020 - Present",
      "achievements": ["Led agile roadmap planning for the analytics platform", "Defined SQL based KPIs"],
      "skills": ["Agile", "SQL"]
    },
    {
      "title": "Software Engineer",
      "company": "Beta",
      "duration": "2016 - 2020",
      "achievements": ["Built internal tools"],
      "skills": ["Go"]
    }
  ],
  "skills": ["SQL", "Agile", "Go", "Figma", "Jira"],
  "education": [{"degree": "BS Computer Science", "institution": "State University", "year": "2016"}]
}`

const testJobDescription = `Senior Product Manager

We are a fintech startup looking for a product manager to own the roadmap.

Requirements:
- 5+ years of experience in product management
- Strong SQL and data analysis skills
- Experience with agile teams

Salary: $150,000 - $180,000`
