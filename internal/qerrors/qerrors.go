package qerrors

import (
	"errors"
	"fmt"
)

var (
	// Error kinds. Callers classify with errors.Is.
	ErrValidation      = errors.New("validation error")
	ErrPersistence     = errors.New("persistence error")
	ErrExternalService = errors.New("external service error")
	ErrTimeout         = errors.New("timeout")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")

	// Course errors
	CourseNotFoundError  = fmt.Errorf("course %w", ErrNotFound)
	AlreadyEnrolledError = fmt.Errorf("%w: learner is already enrolled in this course", ErrValidation)

	// Course request errors
	RequestNotFoundError = fmt.Errorf("course request %w", ErrNotFound)

	// User errors
	UnauthenticatedError        = fmt.Errorf("%w: you must be signed in to request course access", ErrValidation)
	UnauthenticatedSessionError = fmt.Errorf("%w: missing or invalid session", ErrUnauthorized)
	UserNotFoundError           = fmt.Errorf("user %w", ErrNotFound)

	// Tutor errors
	TutorNotFoundError = fmt.Errorf("tutor %w", ErrNotFound)

	// Inquiry errors
	InquiryNotFoundError = fmt.Errorf("inquiry %w", ErrNotFound)
	InvalidStatusError   = fmt.Errorf("%w: unknown inquiry status", ErrValidation)

	InvalidBody = fmt.Errorf("%w: invalid request body", ErrValidation)
)

// kindError attaches a kind sentinel to a message while preserving the cause chain.
type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.cause
}

// Validation returns an error of kind ErrValidation.
func Validation(format string, args ...interface{}) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// Persistence wraps a document store failure.
func Persistence(cause error, format string, args ...interface{}) error {
	return &kindError{kind: ErrPersistence, msg: fmt.Sprintf(format, args...), cause: cause}
}

// External wraps a failure of an external service such as the hosted assistant.
func External(cause error, format string, args ...interface{}) error {
	return &kindError{kind: ErrExternalService, msg: fmt.Sprintf(format, args...), cause: cause}
}

// Timeout wraps an operation that ran out of time.
func Timeout(cause error, format string, args ...interface{}) error {
	return &kindError{kind: ErrTimeout, msg: fmt.Sprintf(format, args...), cause: cause}
}

// NotFound returns an error of kind ErrNotFound.
func NotFound(format string, args ...interface{}) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}
