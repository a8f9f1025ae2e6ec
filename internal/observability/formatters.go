// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintJobAnalysis outputs a human-readable summary of a job analysis.
func (p *Printer) PrintJobAnalysis(analysis *types.JobAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keywords: %d", analysis.TotalKeywords()))
	if top, ok := analysis.TopCategory(); ok {
		sb.WriteString(fmt.Sprintf(" (top: %s)", top))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Industry: %s | Stage: %s\n", orDash(analysis.CompanyInfo.Industry), orDash(analysis.CompanyInfo.Stage)))
	sb.WriteString("\n")

	for _, category := range analysis.Keywords {
		names := make([]string, 0, len(category.Keywords))
		for _, kw := range category.Keywords {
			names = append(names, kw.Keyword)
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", category.Category, strings.Join(names, ", ")))
	}

	if len(analysis.Requirements) > 0 {
		sb.WriteString("\nRequirements:\n")
		count := min(len(analysis.Requirements), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.Requirements[i]))
		}
		if len(analysis.Requirements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.Requirements)-maxItemsToShow))
		}
	}

	p.printBox("JOB ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedExperiences outputs the top experiences with scores and matched keywords.
func (p *Printer) PrintRankedExperiences(experiences []types.ScoredExperience) {
	if len(experiences) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(experiences), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := experiences[i]
		sb.WriteString(fmt.Sprintf("#%d  %s @ %s\n", i+1, exp.Title, exp.Company))
		sb.WriteString(fmt.Sprintf("    Score: %.1f", exp.RelevanceScore))
		if exp.TitleBonus {
			sb.WriteString(" (title bonus)")
		}
		sb.WriteString("\n")
		if len(exp.MatchedKeywords) > 0 {
			sb.WriteString(fmt.Sprintf("    Keywords: %s\n", strings.Join(exp.MatchedKeywords, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(experiences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more experiences", len(experiences)-maxItemsToShow))
	}

	p.printBox("RANKED EXPERIENCES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs the prioritized skill list.
func (p *Printer) PrintSkills(skills []string) {
	if len(skills) == 0 {
		return
	}
	var sb strings.Builder
	for i, skill := range skills {
		sb.WriteString(fmt.Sprintf("%2d. %s\n", i+1, skill))
	}
	p.printBox("PRIORITIZED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfileIssues outputs profile validation issues.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProfileIssues(issues []string) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ PROFILE IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(issues)))
	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", issue))
	}

	p.printBox("PROFILE ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
