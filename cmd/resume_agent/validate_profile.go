package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/profile"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/validation"
	schemafiles "github.com/jonathan/resume-tailor/schemas"
)

var validateProfileCmd = &cobra.Command{
	Use:   "validate-profile",
	Short: "Validate a resume profile",
	Long: `Check a profile against the JSON schema and the configured validation rules.

With --fix the original file is backed up and rewritten with trimmed text and
de-duplicated, canonical skill names before validation.`,
	RunE: runValidateProfile,
}

var (
	validateProfilePath string
	validateProfileFix  bool
)

func init() {
	validateProfileCmd.Flags().StringVarP(&validateProfilePath, "profile", "p", "", "Path to profile JSON or YAML file (required)")
	validateProfileCmd.Flags().BoolVar(&validateProfileFix, "fix", false, "Normalize the profile in place (a timestamped backup is written first)")

	_ = validateProfileCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(validateProfileCmd)
}

func runValidateProfile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	p, err := profile.LoadProfile(validateProfilePath)
	if err != nil {
		return err
	}

	if validateProfileFix {
		backupPath, err := profile.Backup(validateProfilePath, time.Now())
		if err != nil {
			return err
		}
		p = profile.Normalize(p)
		if err := profile.SaveProfile(validateProfilePath, p); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Normalized profile (backup: %s)\n", backupPath)
	}

	if stats, ok := profile.Stat(validateProfilePath); ok {
		_, _ = fmt.Fprintf(out, "Profile: %s (%s, modified %s)\n",
			validateProfilePath, stats.SizeHuman, stats.Modified.Format("2006-01-02 15:04"))
	}

	issues := validation.CheckProfile(p, cfg.Validation)
	schemaIssues, err := checkProfileSchema(validateProfilePath)
	if err != nil {
		return err
	}
	issues = append(issues, schemaIssues...)

	observability.NewPrinter(out).PrintProfileIssues(issues)
	if len(issues) > 0 {
		return &validation.ProfileError{Issues: issues}
	}
	return nil
}

// checkProfileSchema validates a JSON profile file against the user profile
// schema. YAML profiles are only checked by the validation rules.
func checkProfileSchema(path string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	err = schemas.Validate(schemafiles.UserProfile, data)
	var schemaErr *schemas.ValidationError
	if err == nil || !errors.As(err, &schemaErr) {
		return nil, err
	}
	issues := make([]string, 0, len(schemaErr.Errors))
	for _, fe := range schemaErr.Errors {
		issues = append(issues, fmt.Sprintf("Schema: %s: %s", fe.Field, fe.Message))
	}
	return issues, nil
}
