// Package validation provides functionality to validate user profiles and screen job text before it reaches an LLM.
package validation

import (
	"fmt"
	"strings"
)

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ProfileError lists every problem found in a user profile.
type ProfileError struct {
	Issues []string
}

func (e *ProfileError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("profile validation failed: %s", e.Issues[0])
	}
	return fmt.Sprintf("profile validation failed with %d issues: %s", len(e.Issues), strings.Join(e.Issues, "; "))
}
