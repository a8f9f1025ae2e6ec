package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON object a model should return.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string
	Required    bool
}

// FieldBlock renders the fields as a JSON-like outline for a prompt.
func (s ExtractionSchema) FieldBlock() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, field := range s.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(s.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// JobPostingSchema returns the extraction schema for job postings.
func JobPostingSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "JobPosting",
		Description: "Extract the role, employer and qualifications from a product management job posting. Copy text verbatim.",
		Fields: []SchemaField{
			{Name: "title", Type: `"string"`, Description: "Job title", Required: true},
			{Name: "company", Type: `"string"`, Description: "Hiring company"},
			{Name: "location", Type: `"string"`, Description: "Location or remote policy"},
			{Name: "requirements", Type: `["string"]`, Description: "Required qualifications, one per item, verbatim", Required: true},
			{Name: "responsibilities", Type: `["string"]`, Description: "Duties, one per item, verbatim"},
			{Name: "nice_to_have", Type: `["string"]`, Description: "Preferred qualifications, verbatim"},
		},
	}
}
