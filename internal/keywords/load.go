package keywords

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-tailor/internal/schemas"
	schemafiles "github.com/jonathan/resume-tailor/schemas"
)

// LoadError represents an error that occurred while loading a keyword table file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("keyword table error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("keyword table error: %s (%s)", e.Message, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// tableFile is the on-disk layout of a keyword table.
//
//	categories:
//	  - name: core_skills
//	    weight: 1.0
//	    phrases: [roadmap, agile]
//
// A category without a weight gets DefaultWeight. A phrase listed in more than
// one category is scored by the last of those categories.
type tableFile struct {
	Categories []struct {
		Name    string   `yaml:"name"`
		Weight  *float64 `yaml:"weight"`
		Phrases []string `yaml:"phrases"`
	} `yaml:"categories"`
}

// LoadTable reads a keyword table from a YAML file and checks it against the
// keyword table schema.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	table, err := ParseTable(data, path)
	if err != nil {
		return Table{}, err
	}
	if err := validateTableSchema(data); err != nil {
		return Table{}, &LoadError{Path: path, Message: "file does not match the keyword table schema", Cause: err}
	}
	return table, nil
}

// validateTableSchema converts the YAML document to JSON and validates it.
func validateTableSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return schemas.Validate(schemafiles.KeywordTable, jsonData)
}

// ParseTable parses a YAML keyword table. The source is only used in error messages.
func ParseTable(data []byte, source string) (Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Table{}, &LoadError{Path: source, Message: "failed to parse YAML", Cause: err}
	}

	categories := make([]Category, 0, len(file.Categories))
	seen := make(map[string]bool, len(file.Categories))
	for i, c := range file.Categories {
		if c.Name == "" {
			return Table{}, &LoadError{Path: source, Message: fmt.Sprintf("category %d has no name", i+1)}
		}
		if seen[c.Name] {
			return Table{}, &LoadError{Path: source, Message: fmt.Sprintf("duplicate category %q", c.Name)}
		}
		seen[c.Name] = true

		weight := DefaultWeight
		if c.Weight != nil {
			if *c.Weight < 0 {
				return Table{}, &LoadError{Path: source, Message: fmt.Sprintf("category %q has negative weight", c.Name)}
			}
			weight = *c.Weight
		}
		categories = append(categories, Category{Name: c.Name, Weight: weight, Phrases: dedupe(c.Phrases)})
	}
	return New(categories...), nil
}
