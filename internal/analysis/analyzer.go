// Package analysis scans job descriptions against a keyword table.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/keywords"
	"github.com/jonathan/resume-tailor/internal/types"
)

// MaxRequirements caps the number of requirement snippets kept per analysis.
const MaxRequirements = 10

var (
	startupTerms    = []string{"startup", "early stage", "seed"}
	enterpriseTerms = []string{"enterprise", "fortune", "large"}
)

// Analyzer scores job descriptions against one keyword table.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	table keywords.Table
}

// NewAnalyzer creates an analyzer for the given keyword table.
func NewAnalyzer(table keywords.Table) *Analyzer {
	return &Analyzer{table: table}
}

// Table returns the analyzer's keyword table.
func (a *Analyzer) Table() keywords.Table {
	return a.table
}

// Analyze extracts keywords, scores, requirements and a company guess from jobText.
// An empty jobText yields an analysis with every category present and empty.
func (a *Analyzer) Analyze(jobText string) *types.JobAnalysis {
	lower := strings.ToLower(jobText)

	found := a.findKeywords(lower)
	requirements := ExtractRequirements(jobText)

	return &types.JobAnalysis{
		Keywords:        found,
		KeywordScores:   a.scoreKeywords(found),
		Requirements:    requirements,
		CompanyInfo:     a.companyInfo(lower),
		AnalysisSummary: Summarize(found, len(requirements)),
	}
}

func (a *Analyzer) findKeywords(lower string) []types.CategoryKeywords {
	categories := a.table.Categories()
	found := make([]types.CategoryKeywords, 0, len(categories))
	for _, c := range categories {
		entry := types.CategoryKeywords{Category: c.Name, Keywords: []types.KeywordCount{}}
		if lower != "" {
			for _, phrase := range c.Phrases {
				if count := strings.Count(lower, phrase); count > 0 {
					entry.Keywords = append(entry.Keywords, types.KeywordCount{Keyword: phrase, Count: count})
				}
			}
		}
		found = append(found, entry)
	}
	return found
}

// scoreKeywords weights each found keyword by its category. A phrase found in
// several categories keeps the score of the last one.
func (a *Analyzer) scoreKeywords(found []types.CategoryKeywords) *types.KeywordScores {
	scores := types.NewKeywordScores()
	for _, c := range found {
		weight := a.table.Weight(c.Category)
		for _, kw := range c.Keywords {
			scores.Set(kw.Keyword, float64(kw.Count)*weight)
		}
	}
	return scores
}

func (a *Analyzer) companyInfo(lower string) types.CompanyInfo {
	info := types.CompanyInfo{Culture: []string{}}

	if industries, ok := a.table.Category(keywords.Industries); ok {
		for _, industry := range industries.Phrases {
			if strings.Contains(lower, industry) {
				info.Industry = industry
				break
			}
		}
	}

	switch {
	case containsAny(lower, startupTerms):
		info.Stage = "startup"
	case containsAny(lower, enterpriseTerms):
		info.Stage = "enterprise"
	}
	return info
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Summarize renders the one-line analysis summary. Top categories are ranked by
// the number of distinct keywords found; ties keep table order.
func Summarize(found []types.CategoryKeywords, requirementCount int) string {
	ranked := make([]types.CategoryKeywords, len(found))
	copy(ranked, found)
	sort.SliceStable(ranked, func(i, j int) bool {
		return len(ranked[i].Keywords) > len(ranked[j].Keywords)
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	total := 0
	for _, c := range found {
		total += len(c.Keywords)
	}

	top := make([]string, len(ranked))
	for i, c := range ranked {
		top[i] = c.Category
	}

	return fmt.Sprintf("Found %d relevant PM keywords. Top focus areas: %s. Identified %d key requirements.",
		total, strings.Join(top, ", "), requirementCount)
}
