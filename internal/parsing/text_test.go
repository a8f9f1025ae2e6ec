package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"collapses whitespace", "  Senior\tPM\n\nrole  ", "Senior PM role"},
		{"keeps allowed punctuation", "SQL, A/B tests (50%) & $100k+ #1 @acme!?", "SQL, A/B tests (50%) & $100k+ #1 @acme!?"},
		{"drops other symbols", "Own the roadmap → ship *fast* ~always~", "Own the roadmap  ship fast always"},
		{"keeps unicode letters", "Café résumé", "Café résumé"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestExtractYearsOfExperience(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"years of experience", "5+ years of experience in product", 5, true},
		{"years experience", "Requires 7 years experience", 7, true},
		{"yrs experience", "3 yrs experience with SaaS", 3, true},
		{"experience first", "Experience: at least 4 years", 4, true},
		{"case insensitive", "8 YEARS OF EXPERIENCE", 8, true},
		{"none", "Great culture and snacks", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractYearsOfExperience(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSalaryRange(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   SalaryRange
		wantOK bool
	}{
		{"dollars", "Pay: $120,000 - $150,000 per year", SalaryRange{120000, 150000}, true},
		{"k suffix", "Compensation 120-150K plus equity", SalaryRange{120000, 150000}, true},
		{"dollar k", "Range $90k - $110k", SalaryRange{90000, 110000}, true},
		{"none", "Competitive salary", SalaryRange{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSalaryRange(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, TextSimilarity("", "anything"))
	assert.Equal(t, 1.0, TextSimilarity("Agile SQL", "sql agile"))
	// {a,b,c} vs {b,c,d}: 2 shared of 4 total
	assert.InDelta(t, 0.5, TextSimilarity("a b c", "b c d"), 1e-9)
	assert.Equal(t, 0.0, TextSimilarity("   ", "  "))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2019 - Present", FormatDuration("2019", ""))
	assert.Equal(t, "2019 - Present", FormatDuration("2019", "present"))
	assert.Equal(t, "2019 - 2022", FormatDuration("2019", "2022"))
}

func TestGenerateFilename(t *testing.T) {
	now := time.Date(2024, 1, 31, 9, 15, 0, 0, time.UTC)

	assert.Equal(t, "resume_senior_pm_acme_inc_20240131_0915",
		GenerateFilename("resume", "Senior PM", "Acme, Inc.", now))
	assert.Equal(t, "resume_20240131_0915", GenerateFilename("resume", "", "", now))
	assert.Equal(t, "cv_head-of_product_20240131_0915", GenerateFilename("CV", "Head-of  Product!", "", now))
}

func TestExtractContactInfo(t *testing.T) {
	text := `Jane Doe
jane.doe@example.com | (555) 123-4567
LinkedIn.com/in/jane-doe`

	info := ExtractContactInfo(text)
	assert.Equal(t, "jane.doe@example.com", info.Email)
	assert.Equal(t, "(555) 123-4567", info.Phone)
	assert.Equal(t, "https://LinkedIn.com/in/jane-doe", info.LinkedIn)

	assert.Equal(t, ContactInfo{}, ExtractContactInfo("no contact here"))
}

func TestExtractJobFacts(t *testing.T) {
	facts := ExtractJobFacts("We need 6+ years of experience. Salary $140k - $170k. Apply: jobs@acme.io")
	require.NotNil(t, facts.YearsOfExperience)
	assert.Equal(t, 6, *facts.YearsOfExperience)
	require.NotNil(t, facts.Salary)
	assert.Equal(t, SalaryRange{Min: 140000, Max: 170000}, *facts.Salary)
	assert.Equal(t, "jobs@acme.io", facts.Contact.Email)

	empty := ExtractJobFacts("")
	assert.Nil(t, empty.YearsOfExperience)
	assert.Nil(t, empty.Salary)
}
