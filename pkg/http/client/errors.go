package client

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnly is returned by Response.Set and Response.Unset.
	ErrReadOnly = errors.New("response data may not be mutated")

	// ErrInvalidData is returned when request data cannot be encoded for
	// the chosen method.
	ErrInvalidData = errors.New("unsupported request data")
)

const maxSummaryLen = 120

// RequestError reports a response with a 4xx or 5xx status.
type RequestError struct {
	Response *Response
	Status   int
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("HTTP request returned status code %d", e.Status)
	if e.Response == nil {
		return msg
	}

	summary := e.Response.String()
	if summary == "" {
		return msg
	}
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen] + " (truncated...)"
	}
	return msg + ":\n" + summary
}
