package backend

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a success envelope carries no data.
var ErrNoData = errors.New("no data returned from backend")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

// EnvelopeError reports an envelope whose status is not "success".
type EnvelopeError struct {
	Status  string
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend reported status %q", e.Status)
	}
	return fmt.Sprintf("backend reported status %q: %s", e.Status, e.Message)
}
