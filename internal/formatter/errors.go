package formatter

import "fmt"

// SettingsError represents errors loading or saving formatter settings
type SettingsError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SettingsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("settings error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("settings error for %s: %s", e.Path, e.Message)
}

func (e *SettingsError) Unwrap() error {
	return e.Cause
}
