package scraper

import (
	"errors"
	"fmt"
)

// SourceUnreachableError aborts the scrape of one source: the fetch failed,
// the server answered with a non-200 status, or the page never rendered.
type SourceUnreachableError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

func (e *SourceUnreachableError) Error() string {
	msg := fmt.Sprintf("source %s unreachable | url: %s", e.Source, e.URL)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status: %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += " error: " + e.Err.Error()
	}
	return msg
}

func (e *SourceUnreachableError) Unwrap() error {
	return e.Err
}

// tags err with the source name when it is a SourceUnreachableError
func unreachable(source string, err error) error {
	var sue *SourceUnreachableError
	if errors.As(err, &sue) && sue.Source == "" {
		sue.Source = source
	}
	return err
}
