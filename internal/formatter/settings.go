package formatter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// SettingsFileName is the settings file stored in the user's home directory.
const SettingsFileName = ".resume_formatter_settings.json"

// Font describes one font slot.
type Font struct {
	Family string `json:"family"`
	Size   int    `json:"size"`
	Weight string `json:"weight"`
}

// Fonts groups the header, subheader and body fonts.
type Fonts struct {
	Header    Font `json:"header"`
	Subheader Font `json:"subheader"`
	Body      Font `json:"body"`
}

// Spacing holds line and section spacing multipliers.
type Spacing struct {
	Line    float64 `json:"line_spacing"`
	Section float64 `json:"section_spacing"`
}

// Colors holds hex colors used by the HTML output.
type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Text      string `json:"text"`
}

// Settings controls which sections are rendered and how they look.
type Settings struct {
	Sections []string `json:"sections"`
	Fonts    Fonts    `json:"fonts"`
	Spacing  Spacing  `json:"spacing"`
	Colors   Colors   `json:"colors"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Sections: []string{
			SectionContact, SectionSummary, SectionExperience,
			SectionEducation, SectionSkills, SectionProjects,
		},
		Fonts: Fonts{
			Header:    Font{Family: "Arial", Size: 16, Weight: "bold"},
			Subheader: Font{Family: "Arial", Size: 14, Weight: "bold"},
			Body:      Font{Family: "Arial", Size: 11, Weight: "normal"},
		},
		Spacing: Spacing{Line: 1.2, Section: 1.5},
		Colors: Colors{
			Primary:   "#2c3e50",
			Secondary: "#34495e",
			Text:      "#2c3e50",
		},
	}
}

// ActiveSections returns the enabled sections in rendering order. Unknown
// names in Sections are ignored.
func (s Settings) ActiveSections() []string {
	enabled := make(map[string]bool, len(s.Sections))
	for _, name := range s.Sections {
		enabled[name] = true
	}
	var active []string
	for _, name := range AvailableSections() {
		if enabled[name] {
			active = append(active, name)
		}
	}
	return active
}

// DefaultSettingsPath returns the settings file path in the user's home directory.
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &SettingsError{Path: SettingsFileName, Message: "failed to resolve home directory", Cause: err}
	}
	return filepath.Join(home, SettingsFileName), nil
}

// LoadSettings reads settings from path and overlays them on the defaults.
// A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, &SettingsError{Path: path, Message: "failed to read settings file", Cause: err}
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), &SettingsError{Path: path, Message: "failed to parse settings JSON", Cause: err}
	}
	return settings, nil
}

// SaveSettings writes settings to path as indented JSON.
func SaveSettings(path string, settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return &SettingsError{Path: path, Message: "failed to marshal settings", Cause: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &SettingsError{Path: path, Message: "failed to create settings directory", Cause: err}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &SettingsError{Path: path, Message: "failed to write settings file", Cause: err}
	}
	return nil
}
