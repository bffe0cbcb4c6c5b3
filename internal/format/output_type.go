package format

import (
	"fmt"
	"strings"
)

// OutputType specifies the renderer to use for formatting output.
type OutputType string

const (
	// OutputText renders output as ASCII text (default)
	OutputText OutputType = "text"
	// OutputJSON renders output as JSON (machine-readable)
	OutputJSON OutputType = "json"
)

// ParseOutputType parses a string into an OutputType with validation.
// Returns OutputText for empty strings (default behavior).
func ParseOutputType(s string) (OutputType, error) {
	if s == "" {
		return OutputText, nil
	}

	switch strings.ToLower(s) {
	case "text", "ascii", "txt":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return OutputText, fmt.Errorf("invalid output type '%s': must be 'text' or 'json'", s)
	}
}
