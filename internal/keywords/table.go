// Package keywords provides the weighted keyword tables used to score job descriptions.
//
// A Table is an immutable, ordered list of categories. Each category carries one
// weight that applies to every phrase in it. Phrases are matched as lowercase
// substrings, so they are stored lowercased.
//
// When the same phrase appears in more than one category, the score for that
// phrase comes from the last category that contains it: scores are overwritten,
// not summed. Tables built by Merge never produce such overlaps within a
// category, but separate categories may still share phrases.
package keywords

import "strings"

// Standard category names.
const (
	CoreSkills      = "core_skills"
	TechnicalSkills = "technical_skills"
	SoftSkills      = "soft_skills"
	Industries      = "industries"
)

// DefaultWeight is applied to categories that have no explicit weight.
const DefaultWeight = 0.5

// Category is a named group of phrases sharing one weight.
type Category struct {
	Name    string   `json:"name" yaml:"name"`
	Weight  float64  `json:"weight" yaml:"weight"`
	Phrases []string `json:"phrases" yaml:"phrases"`
}

// Table is an ordered, immutable set of keyword categories.
// The zero value is an empty table.
type Table struct {
	categories []Category
}

// New builds a table from categories. Phrases are lowercased and trimmed,
// empty phrases are dropped and negative weights are clamped to zero.
// The input slices are copied.
func New(categories ...Category) Table {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, normalizeCategory(c))
	}
	return Table{categories: out}
}

func normalizeCategory(c Category) Category {
	phrases := make([]string, 0, len(c.Phrases))
	for _, p := range c.Phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	weight := c.Weight
	if weight < 0 {
		weight = 0
	}
	return Category{Name: c.Name, Weight: weight, Phrases: phrases}
}

// Categories returns a copy of the table's categories in order.
func (t Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{
			Name:    c.Name,
			Weight:  c.Weight,
			Phrases: append([]string(nil), c.Phrases...),
		}
	}
	return out
}

// Len returns the number of categories.
func (t Table) Len() int {
	return len(t.categories)
}

// Category returns the named category.
func (t Table) Category(name string) (Category, bool) {
	for _, c := range t.categories {
		if c.Name == name {
			return Category{Name: c.Name, Weight: c.Weight, Phrases: append([]string(nil), c.Phrases...)}, true
		}
	}
	return Category{}, false
}

// Weight returns the weight of the named category, or DefaultWeight if the
// category is not in the table.
func (t Table) Weight(name string) float64 {
	for _, c := range t.categories {
		if c.Name == name {
			return c.Weight
		}
	}
	return DefaultWeight
}

// Phrases returns every phrase in table order, including duplicates across categories.
func (t Table) Phrases() []string {
	var out []string
	for _, c := range t.categories {
		out = append(out, c.Phrases...)
	}
	return out
}

// WithWeights returns a copy of the table with the named category weights replaced.
// Categories not present in weights keep their current weight.
func (t Table) WithWeights(weights map[string]float64) Table {
	categories := t.Categories()
	for i := range categories {
		if w, ok := weights[categories[i].Name]; ok {
			categories[i].Weight = w
		}
	}
	return New(categories...)
}
