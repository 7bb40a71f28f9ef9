package cli

import "fmt"

// PrereqError indicates a required prerequisite is missing from the system.
// Commands surface it unwrapped so Execute can map it to the dedicated
// exit code.
type PrereqError struct {
	// Tool is the missing prerequisite.
	Tool string
	// Hint tells the user how to get it.
	Hint string
}

// Error returns a user-friendly message with actionable guidance.
func (e *PrereqError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("%s is required but was not found on this system", e.Tool)
	}
	return fmt.Sprintf("%s is required but was not found on this system. %s", e.Tool, e.Hint)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *PrereqError) Is(target error) bool {
	_, ok := target.(*PrereqError)
	return ok
}
