// Package errors provides the typed error hierarchy for crsconv.
// Every failure that reaches the process boundary carries a category, and
// the category decides the exit code reported to the shell.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the category of an error.
// The category is what callers switch on; the message and subject are for
// humans and may change between releases.
type ErrorType string

// Error categories. Each one maps to its own exit code so that scripts can
// tell a bad CRS identifier apart from a bad coordinate.
const (
	ErrTypeConfig    ErrorType = "config"
	ErrTypeCRS       ErrorType = "crs"
	ErrTypeInput     ErrorType = "input"
	ErrTypeDMS       ErrorType = "dms"
	ErrTypeTransform ErrorType = "transform"
)

// Exit codes returned by the command.
// They are part of the command-line contract and stay stable so that shell
// scripts can branch on them.
const (
	ExitOK        = 0
	ExitUsage     = 1
	ExitCRS       = 2
	ExitInput     = 3
	ExitTransform = 4
)

// ConvError is the base error type embedded by every typed error.
// Subject names the offending value (a CRS identifier, a coordinate token or
// a config file path) when there is one, so that the rendered message points
// at exactly what the user has to correct.
type ConvError struct {
	Type    ErrorType
	Subject string
	Message string
	Cause   error
}

func (e *ConvError) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Type, e.Message)
	if e.Subject != "" {
		msg = fmt.Sprintf("%s error for %q: %s", e.Type, e.Subject, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConvError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *ConvError of the same category, so that
// errors.Is(err, &ConvError{Type: ErrTypeCRS}) works on wrapped chains.
func (e *ConvError) Is(target error) bool {
	t, ok := target.(*ConvError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Base returns the receiver. It is promoted to every typed error that
// embeds *ConvError.
func (e *ConvError) Base() *ConvError {
	return e
}

// Base returns the outermost *ConvError in err's chain, or nil.
func Base(err error) *ConvError {
	for err != nil {
		if b, ok := err.(interface{ Base() *ConvError }); ok {
			return b.Base()
		}
		err = stderrors.Unwrap(err)
	}
	return nil
}

// InvalidCRSError is returned when a CRS identifier does not resolve.
// It is raised before any coordinate is parsed, which lets callers report a
// bad identifier even when the coordinates are malformed too.
type InvalidCRSError struct {
	*ConvError
}

// NewInvalidCRSError creates an InvalidCRSError for the given identifier.
// The engine's own diagnostic is kept as the cause so that verbose output
// still shows why PROJ refused the definition.
func NewInvalidCRSError(identifier string, cause error) *InvalidCRSError {
	return &InvalidCRSError{
		ConvError: &ConvError{
			Type:    ErrTypeCRS,
			Subject: identifier,
			Message: "unknown coordinate reference system",
			Cause:   cause,
		},
	}
}

// InvalidInputError is returned when a coordinate token is neither a
// decimal number nor a DMS string.
type InvalidInputError struct {
	*ConvError
}

// NewInvalidInputError creates an InvalidInputError for a coordinate token.
// The cause is usually the DMSParseError of the second parsing attempt.
func NewInvalidInputError(token string, cause error) *InvalidInputError {
	return &InvalidInputError{
		ConvError: &ConvError{
			Type:    ErrTypeInput,
			Subject: token,
			Message: "unparseable coordinate",
			Cause:   cause,
		},
	}
}

// DMSParseError is returned when text does not match the DMS grammar.
// It is reported on its own by the dms package and as the cause of an
// InvalidInputError by the coordinate parser.
type DMSParseError struct {
	*ConvError
}

// NewDMSParseError creates a DMSParseError for the rejected text.
// DMS failures have no underlying cause; message says which part of the
// notation was wrong.
func NewDMSParseError(text, message string) *DMSParseError {
	return &DMSParseError{
		ConvError: &ConvError{
			Type:    ErrTypeDMS,
			Subject: text,
			Message: message,
		},
	}
}

// TransformError wraps failures reported by the projection engine once
// both CRS are known to be valid.
type TransformError struct {
	*ConvError
}

// NewTransformError creates a TransformError.
// This constructor is used both for a pipeline that cannot be built and for
// a single transformation that fails or yields non-finite coordinates.
func NewTransformError(message string, cause error) *TransformError {
	return &TransformError{
		ConvError: &ConvError{
			Type:    ErrTypeTransform,
			Message: message,
			Cause:   cause,
		},
	}
}

// ConfigError represents configuration validation and loading errors.
// It maps to the usage exit code, the same as a flag parsing failure, since
// both are fixed by changing the command line or its defaults file.
type ConfigError struct {
	*ConvError
}

// NewConfigError creates a configuration error without path context.
// Use it for option validation, where no file is involved.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		ConvError: &ConvError{
			Type:    ErrTypeConfig,
			Message: message,
			Cause:   cause,
		},
	}
}

// NewConfigErrorWithPath creates a configuration error for a config file.
// The path becomes the subject, so read and decode failures name the file
// that has to be fixed.
func NewConfigErrorWithPath(path, message string, cause error) *ConfigError {
	return &ConfigError{
		ConvError: &ConvError{
			Type:    ErrTypeConfig,
			Subject: path,
			Message: message,
			Cause:   cause,
		},
	}
}

// ExitCode maps an error to the process exit code. The outermost category
// in the chain wins, so an InvalidInputError caused by a DMSParseError
// exits as an input error. Errors without a category are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	ce := Base(err)
	if ce == nil {
		return ExitUsage
	}

	switch ce.Type {
	case ErrTypeCRS:
		return ExitCRS
	case ErrTypeInput, ErrTypeDMS:
		return ExitInput
	case ErrTypeTransform:
		return ExitTransform
	default:
		return ExitUsage
	}
}
