package db

import "fmt"

// StoreError represents a failed run history operation
type StoreError struct {
	Op      string
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("store error: %s %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
