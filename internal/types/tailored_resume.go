package types

// ScoredExperience pairs an experience with its relevance score for one job description.
type ScoredExperience struct {
	Experience
	RelevanceScore  float64  `json:"relevance_score"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	TitleBonus      bool     `json:"title_bonus,omitempty"`
}

// ScoredSkill pairs a skill with its priority score.
type ScoredSkill struct {
	Skill      string  `json:"skill"`
	Score      float64 `json:"score"`
	ExactMatch bool    `json:"exact_match"`
}

// TailoredResume is the output of tailoring a profile to a job description.
type TailoredResume struct {
	PersonalInfo      PersonalInfo       `json:"personal_info"`
	Summary           string             `json:"summary"`
	Experiences       []ScoredExperience `json:"experiences"`
	Skills            []string           `json:"skills"`
	Education         []Education        `json:"education"`
	Certifications    []string           `json:"certifications"`
	Languages         []string           `json:"languages,omitempty"`
	JobAnalysis       *JobAnalysis       `json:"job_analysis,omitempty"`
	OptimizationNotes []string           `json:"optimization_notes"`
}
