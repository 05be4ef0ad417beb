package facet

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUndefinedField indicates a bare field names an attribute the source does not have.
	ErrUndefinedField = errors.New("undefined field")

	// ErrUnknownMode indicates a dynamic call resolved to a mode with no field specification.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownMethod indicates a dynamic call matched no mode pattern, pass-through or mode name.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrInvalidField indicates a field descriptor could not be built.
	ErrInvalidField = errors.New("invalid field")

	// ErrNotSequence indicates a collection was built from a value that is not a sequence.
	ErrNotSequence = errors.New("not a sequence")

	// ErrInvalidSchema indicates a declarative field specification could not be parsed.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrMissingEncryptor indicates a required encryptor was not registered.
	ErrMissingEncryptor = errors.New("missing encryptor")

	// ErrMissingHasher indicates a required hasher was not registered.
	ErrMissingHasher = errors.New("missing hasher")

	// ErrMissingMasker indicates a required masker was not registered.
	ErrMissingMasker = errors.New("missing masker")

	// ErrInvalidTag indicates a transform names an unknown capability.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrEncrypt indicates encryption of a field failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrHash indicates hashing of a field failed.
	ErrHash = errors.New("hash failed")

	// ErrMask indicates masking of a field failed.
	ErrMask = errors.New("mask failed")

	// ErrInvalidKey indicates an encryption key has invalid size or format.
	ErrInvalidKey = errors.New("invalid key")
)

// UndefinedFieldError reports a bare field that the source object cannot resolve.
type UndefinedFieldError struct {
	Kind  string // Kind that declared the field
	Field string // Attribute name that was looked up
}

func (e *UndefinedFieldError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s %q on %s", ErrUndefinedField.Error(), e.Field, e.Kind)
	}
	return fmt.Sprintf("%s %q", ErrUndefinedField.Error(), e.Field)
}

func (e *UndefinedFieldError) Unwrap() error {
	return ErrUndefinedField
}

// UnknownModeError reports a dynamic call on a Projector that named a mode
// the Kind does not define.
type UnknownModeError struct {
	Kind   string // Kind the call was made against
	Method string // Method name as called
	Mode   string // Normalized mode name
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("method %s::%s does not exist: %s %q", e.Kind, e.Method, ErrUnknownMode.Error(), e.Mode)
}

func (e *UnknownModeError) Unwrap() error {
	return ErrUnknownMode
}

// UnknownMethodError reports a dynamic call on a Collection that matched nothing.
type UnknownMethodError struct {
	Type   string // Owning type, e.g. "user collection"
	Method string // Method name as called
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("method %s::%s does not exist", e.Type, e.Method)
}

func (e *UnknownMethodError) Unwrap() error {
	return ErrUnknownMethod
}

// ConfigError represents a kind configuration error.
// It wraps a sentinel error with additional context about the field and algorithm.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrMissingEncryptor, etc.)
	Field     string // Field key that triggered the error
	Algorithm string // Algorithm or type that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error while transforming a field value.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrEncrypt, ErrHash, ErrMask)
	Field     string // Field key that failed
	Operation string // Operation that failed (encrypt, hash, mask)
	Cause     error  // Original error from the underlying operation
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %v", e.Operation, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s field %s", e.Operation, e.Field)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

func newTransformError(sentinel error, operation, field string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}
