// Package extract turns raw resume and job-posting text into the
// system's structured records, using the model capability as an
// information-extraction oracle. Model output is schema-validated and
// retried a bounded number of times; anything that survives extraction
// carries provenance back to the input text.
package extract

import "fmt"

// ExtractionError reports input that could not be turned into a valid
// record within the retry budget.
type ExtractionError struct {
	Message  string
	Attempts int
	Cause    error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extraction failed: %s", e.Message)
	if e.Attempts > 0 {
		msg = fmt.Sprintf("extraction failed after %d attempts: %s", e.Attempts, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
