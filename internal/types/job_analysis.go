package types

// KeywordCount is a keyword found in a job description with its occurrence count.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// CategoryKeywords holds the keywords found for one keyword category.
type CategoryKeywords struct {
	Category string         `json:"category"`
	Keywords []KeywordCount `json:"keywords"`
}

// CompanyInfo is a rule-based, low-confidence guess about the hiring company.
type CompanyInfo struct {
	Industry string   `json:"industry"`
	Size     string   `json:"size"`
	Stage    string   `json:"stage"`
	Culture  []string `json:"culture"`
}

// JobAnalysis is the result of analyzing one job description.
type JobAnalysis struct {
	// Keywords lists found keywords per category, in keyword table order.
	Keywords        []CategoryKeywords `json:"keywords"`
	KeywordScores   *KeywordScores     `json:"keyword_scores"`
	Requirements    []string           `json:"requirements"`
	CompanyInfo     CompanyInfo        `json:"company_info"`
	AnalysisSummary string             `json:"analysis_summary"`
}

// TotalKeywords returns the number of distinct (category, keyword) findings.
func (a *JobAnalysis) TotalKeywords() int {
	total := 0
	for _, c := range a.Keywords {
		total += len(c.Keywords)
	}
	return total
}

// TopCategory returns the category with the most found keywords.
// Ties go to the category listed first. Returns false when there are no categories.
func (a *JobAnalysis) TopCategory() (string, bool) {
	if len(a.Keywords) == 0 {
		return "", false
	}
	best := a.Keywords[0]
	for _, c := range a.Keywords[1:] {
		if len(c.Keywords) > len(best.Keywords) {
			best = c
		}
	}
	return best.Category, true
}
