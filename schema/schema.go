// Package schema has models and constants for all parts of chronometrist.
package schema

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Annotations holds arbitrary key/value metadata attached to an event.
type Annotations map[string]any

// Colorizer styles text with a named color.
type Colorizer func(text string, c Color) string

// TimedEvent represents a named sub-stage of a unit of work.
type TimedEvent struct {
	Title       string      // Label shown after the bar
	Annotations Annotations // Optional metadata, nil when absent
	Start       time.Time   // When the event was recorded
	End         time.Time   // Zero while the event is still running
	Err         error       // Set when the event failed
}

// Finished reports whether the event has an end time.
func (e TimedEvent) Finished() bool {
	return !e.End.IsZero()
}

// Duration returns the event duration, measured against now when unfinished.
func (e TimedEvent) Duration(now time.Time) time.Duration {
	if e.End.IsZero() {
		return now.Sub(e.Start)
	}
	return e.End.Sub(e.Start)
}

// StatusCoder is implemented by errors that carry a status-like code.
type StatusCoder interface {
	StatusCode() int
}

// EventError is an error with an optional status code.
type EventError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *EventError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != 0 {
		return "status " + strconv.Itoa(e.Code)
	}
	return "unknown error"
}

// StatusCode returns the code attached to the error.
func (e *EventError) StatusCode() int {
	return e.Code
}

// ErrorLabel returns the text shown inside "[Error: ...]".
// A non-zero status code wins over the message.
func ErrorLabel(err error) string {
	if err == nil {
		return ""
	}
	var coder StatusCoder
	if errors.As(err, &coder) && coder.StatusCode() != 0 {
		return fmt.Sprintf("%d", coder.StatusCode())
	}
	return err.Error()
}
