package formatter

import (
	"strings"
)

// FormatText renders the active sections as plain text with underlined headings.
func FormatText(sections Sections, settings Settings) string {
	var sb strings.Builder
	for _, name := range settings.ActiveSections() {
		lines, ok := sections.Get(name)
		if !ok || len(lines) == 0 {
			continue
		}
		sb.WriteString(formatSection(name, lines))
	}
	return sb.String()
}

func formatSection(name string, lines []string) string {
	var sb strings.Builder
	sb.WriteString("\n" + strings.ToUpper(name) + "\n")
	sb.WriteString(strings.Repeat("=", len(name)) + "\n\n")

	switch name {
	case SectionContact:
		sb.WriteString(strings.Join(lines, "\n") + "\n")
	case SectionExperience:
		jobs := GroupJobs(lines)
		for i, job := range jobs {
			sb.WriteString(formatJob(job))
			if i < len(jobs)-1 {
				sb.WriteString("\n")
			}
		}
	case SectionSkills:
		bullets := make([]string, len(lines))
		for i, skill := range lines {
			bullets[i] = "• " + skill
		}
		sb.WriteString(strings.Join(bullets, "\n"))
	default:
		for _, line := range lines {
			if isBullet(line) {
				sb.WriteString("  " + line + "\n")
			} else {
				sb.WriteString(line + "\n")
			}
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// formatJob keeps the header line and bullets the details.
func formatJob(job []string) string {
	var sb strings.Builder
	sb.WriteString(job[0] + "\n")
	for _, detail := range job[1:] {
		if isBullet(detail) {
			sb.WriteString("  " + detail + "\n")
		} else {
			sb.WriteString("• " + detail + "\n")
		}
	}
	return sb.String()
}
