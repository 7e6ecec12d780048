// Package ingest turns the things users actually have, files and job
// posting URLs, into the plain text the extraction layer consumes.
package ingest

import "fmt"

// FetchError reports a failure to retrieve or extract a job posting.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
