package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/formatter"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/logger"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Reformat a plain-text, PDF or DOCX resume",
	Long: `Split an existing resume into sections (contact, summary, experience, education,
skills, projects, certifications, awards) and write it back as consistently formatted text or HTML.

Section selection, fonts and colors come from the settings file (default ~/.resume_formatter_settings.json).`,
	RunE: runFormat,
}

var (
	formatInput        string
	formatOutput       string
	formatHTML         bool
	formatSettingsPath string
	formatSections     []string
	formatSaveSettings bool
)

func init() {
	formatCmd.Flags().StringVarP(&formatInput, "input", "i", "", "Resume file (.txt, .md, .pdf or .docx) (required)")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Output file path (required)")
	formatCmd.Flags().BoolVar(&formatHTML, "html", false, "Write HTML instead of plain text")
	formatCmd.Flags().StringVar(&formatSettingsPath, "settings", "", "Settings JSON file (defaults to ~/"+formatter.SettingsFileName+")")
	formatCmd.Flags().StringSliceVar(&formatSections, "sections", nil, "Sections to include, overriding the settings file")
	formatCmd.Flags().BoolVar(&formatSaveSettings, "save-settings", false, "Persist --sections to the settings file")

	_ = formatCmd.MarkFlagRequired("input")
	_ = formatCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, _ []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}

	settingsPath := formatSettingsPath
	if settingsPath == "" {
		path, err := formatter.DefaultSettingsPath()
		if err != nil {
			return err
		}
		settingsPath = path
	}
	settings, err := formatter.LoadSettings(settingsPath)
	if err != nil {
		// Unreadable settings fall back to the defaults.
		logger.Warn().Err(err).Msg("using default formatter settings")
	}
	if len(formatSections) > 0 {
		settings.Sections = formatSections
		if formatSaveSettings {
			if err := formatter.SaveSettings(settingsPath, settings); err != nil {
				return err
			}
		}
	}

	text, err := ingestion.ExtractResumeText(formatInput)
	if err != nil {
		return err
	}
	sections := formatter.Parse(text)

	var output string
	if formatHTML {
		output, err = formatter.FormatHTML(sections, settings)
		if err != nil {
			return err
		}
	} else {
		output = formatter.FormatText(sections, settings)
	}

	if dir := filepath.Dir(formatOutput); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(formatOutput, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write formatted resume: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully formatted %d sections to %s\n", len(settings.ActiveSections()), formatOutput)
	return nil
}
