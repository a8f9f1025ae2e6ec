package keywords

import "sort"

// DefaultTable returns the product-management keyword table.
func DefaultTable() Table {
	return New(
		Category{
			Name:   CoreSkills,
			Weight: 1.0,
			Phrases: []string{
				"product management", "product strategy", "roadmap", "user stories",
				"agile", "scrum", "kanban", "sprint planning", "backlog management",
				"stakeholder management", "cross-functional", "data analysis",
				"market research", "competitive analysis", "user research", "ux/ui",
				"metrics", "kpis", "analytics", "a/b testing", "experimentation",
			},
		},
		Category{
			Name:   TechnicalSkills,
			Weight: 0.8,
			Phrases: []string{
				"sql", "python", "jira", "confluence", "figma", "sketch",
				"google analytics", "mixpanel", "amplitude", "tableau",
				"api", "sdk", "aws", "azure", "gcp", "docker", "kubernetes",
			},
		},
		Category{
			Name:   SoftSkills,
			Weight: 0.6,
			Phrases: []string{
				"leadership", "communication", "collaboration", "problem solving",
				"critical thinking", "decision making", "negotiation",
				"presentation", "mentoring", "coaching", "influence",
			},
		},
		Category{
			Name:   Industries,
			Weight: 0.7,
			Phrases: []string{
				"saas", "fintech", "healthcare", "e-commerce", "mobile",
				"enterprise", "b2b", "b2c", "marketplace", "platform",
			},
		},
	)
}

// CustomCategories returns the optional product-management extension categories.
func CustomCategories() Table {
	return New(
		Category{
			Name:   "pm_frameworks",
			Weight: DefaultWeight,
			Phrases: []string{
				"design thinking", "lean startup", "jobs to be done", "okrs",
				"product-market fit", "mvp", "minimum viable product",
				"customer development", "product discovery", "dual track agile",
			},
		},
		Category{
			Name:   "metrics_analytics",
			Weight: DefaultWeight,
			Phrases: []string{
				"north star metric", "pirate metrics", "cohort analysis",
				"funnel analysis", "retention analysis", "churn analysis",
				"ltv", "customer lifetime value", "cac", "customer acquisition cost",
			},
		},
		Category{
			Name:   "tools_platforms",
			Weight: DefaultWeight,
			Phrases: []string{
				"productboard", "aha", "roadmunk", "pendo", "fullstory",
				"hotjar", "optimizely", "launchdarkly", "segment", "heap",
			},
		},
	)
}

var industryKeywords = map[string][]string{
	"fintech": {
		"payments", "banking", "lending", "compliance", "kyc", "aml",
		"pci dss", "fraud detection", "risk management", "regulatory",
	},
	"healthcare": {
		"hipaa", "ehr", "emr", "clinical", "patient", "medical device",
		"fda", "clinical trials", "telemedicine", "health records",
	},
	"e-commerce": {
		"conversion rate", "cart abandonment", "checkout", "inventory",
		"fulfillment", "marketplace", "seller tools", "payment gateway",
	},
	"enterprise": {
		"enterprise sales", "b2b", "saas", "api", "integration",
		"scalability", "security", "compliance", "enterprise architecture",
	},
}

// IndustryCategory returns the industry-specific category for the named industry.
// The category is named "industry_<name>" and uses DefaultWeight.
func IndustryCategory(industry string) (Category, bool) {
	phrases, ok := industryKeywords[industry]
	if !ok {
		return Category{}, false
	}
	return Category{
		Name:    "industry_" + industry,
		Weight:  DefaultWeight,
		Phrases: append([]string(nil), phrases...),
	}, true
}

// IndustryNames returns the names of the known industry keyword sets, sorted.
func IndustryNames() []string {
	names := make([]string, 0, len(industryKeywords))
	for name := range industryKeywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
