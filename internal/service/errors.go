package service

import "errors"

// ErrValidation is the sentinel every *ValidationError matches with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is a client input error. Msg is safe to show to end users.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validation errors returned by the services.
var (
	ErrFieldsRequired    = &ValidationError{Msg: "All fields are required"}
	ErrInvalidEmail      = &ValidationError{Msg: "Invalid email format"}
	ErrMessageTooLong    = &ValidationError{Msg: "Message is too long"}
	ErrEventTypeRequired = &ValidationError{Msg: "Event type is required"}
	ErrInvalidEventType  = &ValidationError{Msg: "Invalid event type"}
	ErrLabelTooLong      = &ValidationError{Msg: "Label is too long"}
)
