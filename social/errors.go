package social

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a ServiceError so callers can map failures to distinct
// messages or HTTP statuses.
type Kind int

const (
	// KindValidation marks structural rule violations.
	KindValidation Kind = iota + 1
	// KindNotFound marks operations targeting an unknown id or edge.
	KindNotFound
	// KindDuplicate marks natural-key conflicts (email, edge pair,
	// pending request).
	KindDuplicate
	// KindInvalidInput marks nil parameters, self-requests and other
	// caller mistakes that are not structural validation failures.
	KindInvalidInput
	// KindStorage wraps failures reported by the persistence layer.
	KindStorage
)

// ServiceError is the error type every Service operation returns on
// failure. The original cause, when any, is preserved for diagnostics.
type ServiceError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func validationError(violations []string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: strings.Join(violations, " ")}
}

func notFound(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func duplicate(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func invalidInput(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func storageError(msg string, cause error) *ServiceError {
	return &ServiceError{Kind: KindStorage, Message: msg, Err: cause}
}

// ErrKind returns the Kind of err, or zero when err is not a ServiceError.
func ErrKind(err error) Kind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// IsNotFound reports whether err is a not-found ServiceError.
func IsNotFound(err error) bool { return ErrKind(err) == KindNotFound }

// IsValidation reports whether err is a validation ServiceError.
func IsValidation(err error) bool { return ErrKind(err) == KindValidation }

// IsDuplicate reports whether err is a duplicate ServiceError.
func IsDuplicate(err error) bool { return ErrKind(err) == KindDuplicate }
