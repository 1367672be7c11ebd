package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error code constants for structured errors.
const (
	CodeBeanNotFound       = "BEAN_NOT_FOUND"
	CodeBeanAmbiguous      = "BEAN_AMBIGUOUS"
	CodeBeanAlreadyExists  = "BEAN_ALREADY_EXISTS"
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"
	CodeInvalidFactory     = "INVALID_FACTORY"
	CodeLifecycleError     = "LIFECYCLE_ERROR"
	CodeContainerStarted   = "CONTAINER_STARTED"
	CodeTypeMismatch       = "TYPE_MISMATCH"
	CodeConfigError        = "CONFIG_ERROR"
)

// Standard container errors.
var (
	ErrInvalidFactory   = errors.New("factory must not be nil")
	ErrContainerStarted = errors.New("container already started")
	ErrTypeMismatch     = errors.New("bean type mismatch")
)

// =============================================================================
// BEAN ERROR
// =============================================================================

// BeanError wraps a failure tied to a specific managed bean.
type BeanError struct {
	Bean      string
	Operation string
	Err       error
}

func (e *BeanError) Error() string {
	return fmt.Sprintf("bean %s: %s: %v", e.Bean, e.Operation, e.Err)
}

func (e *BeanError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for BeanError. Empty fields act as wildcards so
// sentinels like &BeanError{Operation: "start"} match any bean.
func (e *BeanError) Is(target error) bool {
	t, ok := target.(*BeanError)
	if !ok {
		return false
	}

	return (e.Bean == "" || t.Bean == "" || e.Bean == t.Bean) &&
		(e.Operation == "" || t.Operation == "" || e.Operation == t.Operation)
}

// NewBeanError creates a new bean error.
func NewBeanError(bean, operation string, err error) *BeanError {
	return &BeanError{
		Bean:      bean,
		Operation: operation,
		Err:       err,
	}
}

// =============================================================================
// STRUCTURED ERROR
// =============================================================================

// Error represents a structured error with a code and optional context.
type Error struct {
	Code      string
	Message   string
	Cause     error
	Timestamp time.Time
	Context   map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Error. Two errors match when their codes are
// equal, which allows comparison against the sentinel values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code != "" && e.Code == t.Code
}

// WithContext adds a context entry to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value

	return e
}

// ErrBeanNotFound creates a not-found error for a bean name.
func ErrBeanNotFound(name string) *Error {
	return &Error{
		Code:      CodeBeanNotFound,
		Message:   "bean '" + name + "' not found",
		Timestamp: time.Now(),
		Context:   map[string]any{"bean_name": name},
	}
}

// ErrNoBeanOfType creates a not-found error for a type lookup.
func ErrNoBeanOfType(typeName string) *Error {
	return &Error{
		Code:      CodeBeanNotFound,
		Message:   "no bean of type " + typeName + " registered",
		Timestamp: time.Now(),
		Context:   map[string]any{"bean_type": typeName},
	}
}

// ErrBeanAmbiguous creates an ambiguity error for a type lookup that
// matched more than one registration.
func ErrBeanAmbiguous(typeName string, candidates []string) *Error {
	return &Error{
		Code:      CodeBeanAmbiguous,
		Message:   "more than one bean of type " + typeName + ": " + strings.Join(candidates, ", "),
		Timestamp: time.Now(),
		Context:   map[string]any{"bean_type": typeName, "candidates": candidates},
	}
}

// ErrBeanAlreadyExists creates a duplicate-registration error.
func ErrBeanAlreadyExists(name string) *Error {
	return &Error{
		Code:      CodeBeanAlreadyExists,
		Message:   "bean '" + name + "' already registered",
		Timestamp: time.Now(),
		Context:   map[string]any{"bean_name": name},
	}
}

// ErrCircularDependency creates a cycle error from the dependency chain.
func ErrCircularDependency(beans []string) *Error {
	return &Error{
		Code:      CodeCircularDependency,
		Message:   "circular dependency detected: " + strings.Join(beans, " -> "),
		Timestamp: time.Now(),
		Context:   map[string]any{"beans": beans},
	}
}

// ErrLifecycleError creates a lifecycle error for a start/stop phase.
func ErrLifecycleError(phase string, cause error) *Error {
	return &Error{
		Code:      CodeLifecycleError,
		Message:   "lifecycle error during " + phase,
		Cause:     cause,
		Timestamp: time.Now(),
		Context:   map[string]any{"phase": phase},
	}
}

// ErrConfigError creates a configuration error.
func ErrConfigError(message string, cause error) *Error {
	return &Error{
		Code:      CodeConfigError,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// =============================================================================
// SENTINELS (for use with Is)
// =============================================================================

var (
	// ErrBeanNotFoundSentinel matches any bean/type not-found error.
	ErrBeanNotFoundSentinel = &Error{Code: CodeBeanNotFound}

	// ErrBeanAmbiguousSentinel matches any ambiguous type lookup error.
	ErrBeanAmbiguousSentinel = &Error{Code: CodeBeanAmbiguous}

	// ErrBeanAlreadyExistsSentinel matches any duplicate registration error.
	ErrBeanAlreadyExistsSentinel = &Error{Code: CodeBeanAlreadyExists}

	// ErrCircularDependencySentinel matches any dependency cycle error.
	ErrCircularDependencySentinel = &Error{Code: CodeCircularDependency}

	// ErrLifecycleErrorSentinel matches any lifecycle error.
	ErrLifecycleErrorSentinel = &Error{Code: CodeLifecycleError}

	// ErrConfigErrorSentinel matches any configuration error.
	ErrConfigErrorSentinel = &Error{Code: CodeConfigError}
)

// =============================================================================
// STANDARD ERRORS PACKAGE INTEGRATION
// =============================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling Unwrap on err, if any.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Join returns an error wrapping the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsBeanNotFound checks if the error is a bean not-found error.
func IsBeanNotFound(err error) bool {
	return Is(err, ErrBeanNotFoundSentinel)
}

// IsBeanAmbiguous checks if the error is an ambiguous type lookup error.
func IsBeanAmbiguous(err error) bool {
	return Is(err, ErrBeanAmbiguousSentinel)
}

// IsBeanAlreadyExists checks if the error is a duplicate registration error.
func IsBeanAlreadyExists(err error) bool {
	return Is(err, ErrBeanAlreadyExistsSentinel)
}

// IsCircularDependency checks if the error is a dependency cycle error.
func IsCircularDependency(err error) bool {
	return Is(err, ErrCircularDependencySentinel)
}

// IsLifecycleError checks if the error is a lifecycle error.
func IsLifecycleError(err error) bool {
	return Is(err, ErrLifecycleErrorSentinel)
}
