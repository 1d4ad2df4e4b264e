package widget

import (
	"errors"
	"fmt"

	"krib/models"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// SelectionError reports a rejected date/time/service selection. The
// session is left untouched; the widget just keeps the control disabled.
type SelectionError struct {
	Field   string
	Message string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidTransitionError reports a step change the state machine forbids,
// e.g. navigating back from the terminal CONFIRM step.
type InvalidTransitionError struct {
	From    models.Step
	Message string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s: %s", e.From, e.Message)
}

// ValidationErrors maps customer-form field names to user-facing messages
// so the widget can render inline guidance.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	return fmt.Sprintf("customer form validation failed (%d fields)", len(e))
}

// FetchError reports a failed availability fetch for one month. Failed
// months are never cached, so re-navigating retries the fetch.
type FetchError struct {
	Month   string
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("availability fetch for %s failed: %s", e.Month, e.Message)
}

// SubmissionError reports a booking submission rejected by the gateway or
// failed at the network layer. The session stays at DETAILS and the
// visitor can correct and resubmit.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}
