package interactions

import (
	"errors"
	"fmt"
)

// Errors returned while parsing interaction data. Field level failures are
// wrapped in a *ParseOptionError naming the option.
var (
	// ErrInvalidType means the wire value does not have the option kind the field expects.
	ErrInvalidType = errors.New("invalid option type")
	// ErrIntegerOutOfRange means an integer is outside the declared min_value/max_value.
	ErrIntegerOutOfRange = errors.New("integer out of range")
	// ErrNumberOutOfRange means a number is outside the declared min_value/max_value.
	ErrNumberOutOfRange = errors.New("number out of range")
	// ErrStringLengthOutOfRange means a string is outside the declared min_length/max_length.
	ErrStringLengthOutOfRange = errors.New("string length out of range")
	ErrInvalidChannelType     = errors.New("invalid channel type")
	// ErrLookupFailed means a user, role, channel or attachment was not in the resolved data.
	ErrLookupFailed      = errors.New("failed to resolve entity")
	ErrInvalidChoice     = errors.New("invalid choice value")
	ErrRequiredField     = errors.New("missing required field")
	ErrUnknownField      = errors.New("unknown field")
	ErrUnknownSubcommand = errors.New("unknown subcommand")
	// ErrEmptyOptions is returned by subcommand groups when no option was received.
	ErrEmptyOptions = errors.New("received an empty option list")
)

// Errors returned while building schemas.
var (
	// ErrMissingDescription means neither a fallback nor a default locale description was available.
	ErrMissingDescription = errors.New("missing description")
	ErrInvalidDescription = errors.New("description must be between 1 and 100 characters")
	ErrUnsupportedType    = errors.New("unsupported option type")
)

// ParseOptionError is returned when the option named Field could not be parsed.
type ParseOptionError struct {
	Field string
	Err   error
}

func (e *ParseOptionError) Error() string {
	return fmt.Sprintf("failed to parse option `%s`: %v", e.Field, e.Err)
}

func (e *ParseOptionError) Unwrap() error {
	return e.Err
}

// SchemaError is returned when the schema of the command or option named Item could not be built.
type SchemaError struct {
	Item string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("failed to build schema for `%s`: %v", e.Item, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func optionError(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseOptionError{Field: field, Err: err}
}
