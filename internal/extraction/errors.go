// Package extraction turns fetched page content into RawExtractions, using an LLM when
// available and a deterministic keyword/regex heuristic otherwise.
package extraction

import "fmt"

// ExtractionError represents a failed structured extraction.
// Stage names the step that failed: "input", "generate", "parse", "validate" or "decode".
type ExtractionError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error (%s): %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error (%s): %s", e.Stage, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
