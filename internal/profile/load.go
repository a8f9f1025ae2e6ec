package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-tailor/internal/types"
)

// LoadProfile loads a user profile from a JSON or YAML (.yaml, .yml) file.
// Unknown JSON fields are ignored.
func LoadProfile(path string) (*types.UserProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return ParseProfile(content, path)
}

// ParseProfile decodes profile data. The format is chosen from the extension of source.
func ParseProfile(data []byte, source string) (*types.UserProfile, error) {
	var p types.UserProfile
	if isYAML(source) {
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, &LoadError{Path: source, Message: "failed to unmarshal YAML", Cause: err}
		}
	} else {
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, &LoadError{Path: source, Message: "failed to unmarshal JSON", Cause: err}
		}
	}
	return &p, nil
}

// SaveProfile writes p to path as indented JSON, or YAML for .yaml/.yml paths.
func SaveProfile(path string, p *types.UserProfile) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(p)
	} else {
		data, err = json.MarshalIndent(p, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return &SaveError{Path: path, Message: "failed to encode profile", Cause: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &SaveError{Path: path, Message: "failed to create output directory", Cause: err}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &SaveError{Path: path, Message: fmt.Sprintf("failed to write file %s", path), Cause: err}
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
