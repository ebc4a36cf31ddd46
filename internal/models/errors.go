package models

import "fmt"

// ExtractionError means a document could not be read as a PDF.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to extract text from PDF: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to extract text from PDF: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

type InvalidRequestTypeError struct {
	Type string
}

func (e *InvalidRequestTypeError) Error() string {
	return fmt.Sprintf("invalid request type %q", e.Type)
}

type UserNotFoundError struct {
	UserID string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user or resumes not found for user %s", e.UserID)
}

type ResumeNotFoundError struct {
	Name string
}

func (e *ResumeNotFoundError) Error() string {
	return fmt.Sprintf("resume %q not found in user profile", e.Name)
}

type ApplicationNotFoundError struct {
	ID string
}

func (e *ApplicationNotFoundError) Error() string {
	return fmt.Sprintf("application %s not found", e.ID)
}

// NoCompletionChoiceError is returned when the provider answered but produced
// no usable choice. Body holds what the provider returned.
type NoCompletionChoiceError struct {
	Provider string
	Body     string
}

func (e *NoCompletionChoiceError) Error() string {
	return fmt.Sprintf("no valid choices returned from %s: %s", e.Provider, e.Body)
}

// CompletionTransportError covers network failures, timeouts and responses
// that could not be parsed. StatusCode is zero when no response arrived.
type CompletionTransportError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *CompletionTransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with HTTP %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *CompletionTransportError) Unwrap() error {
	return e.Err
}

type NotAuthorizedError struct{}

func (e *NotAuthorizedError) Error() string {
	return "not-authorized"
}

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
