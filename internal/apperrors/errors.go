package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable category carried by every AppError.
type Kind string

const (
	KindValidation           Kind = "VALIDATION"
	KindUnbalancedEntry      Kind = "UNBALANCED_ENTRY"
	KindNotFound             Kind = "NOT_FOUND"
	KindMissingConfiguration Kind = "MISSING_CONFIGURATION"
	KindDuplicateCode        Kind = "DUPLICATE_CODE"
	KindInternal             Kind = "INTERNAL"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalancedEntry indicates journal debits and credits differ at 2-decimal precision.
var ErrUnbalancedEntry = errors.New("journal entry is unbalanced")

// ErrMissingConfiguration indicates a required account role or setting is absent for the tenant.
var ErrMissingConfiguration = errors.New("missing configuration")

// ErrInternal is used for unexpected storage or infrastructure failures.
var ErrInternal = errors.New("internal error")

var sentinels = map[Kind]error{
	KindValidation:           ErrValidation,
	KindUnbalancedEntry:      ErrUnbalancedEntry,
	KindNotFound:             ErrNotFound,
	KindMissingConfiguration: ErrMissingConfiguration,
	KindDuplicateCode:        ErrDuplicate,
	KindInternal:             ErrInternal,
}

// AppError carries a Kind and a human message. errors.Is matches it against
// the sentinel of its kind, so callers can keep using errors.Is(err, ErrNotFound).
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *AppError) Is(target error) bool {
	if s, ok := sentinels[e.Kind]; ok && s == target {
		return true
	}
	if t, ok := target.(*AppError); ok {
		return t.Kind == e.Kind && t.Message == e.Message
	}
	return false
}

// NewAppError builds an AppError of the given kind wrapping err (which may be nil).
func NewAppError(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(format string, args ...any) *AppError {
	return NewAppError(KindValidation, fmt.Sprintf(format, args...), nil)
}

func NewUnbalancedEntryError(format string, args ...any) *AppError {
	return NewAppError(KindUnbalancedEntry, fmt.Sprintf(format, args...), nil)
}

func NewNotFoundError(format string, args ...any) *AppError {
	return NewAppError(KindNotFound, fmt.Sprintf(format, args...), nil)
}

func NewMissingConfigurationError(format string, args ...any) *AppError {
	return NewAppError(KindMissingConfiguration, fmt.Sprintf(format, args...), nil)
}

func NewDuplicateError(format string, args ...any) *AppError {
	return NewAppError(KindDuplicateCode, fmt.Sprintf(format, args...), nil)
}

// KindOf extracts the Kind of err. Plain sentinels are recognised too;
// anything else is reported as KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	for kind, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}

// MessageOf returns the human message of the outermost AppError in the chain,
// or err.Error() when there is none.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
