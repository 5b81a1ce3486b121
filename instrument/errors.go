package instrument

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is returned when a validator or the value mapper
	// rejects a value. No command is written when this happens.
	ErrInvalidValue = errors.New("invalid value")

	// ErrFormatMismatch is returned when the number of values fed to a set
	// command template does not match its substitution slots.
	ErrFormatMismatch = errors.New("format mismatch")

	// ErrReadOnly is returned when setting a measurement property.
	ErrReadOnly = errors.New("property is read-only")

	// ErrWriteOnly is returned when getting a setting property.
	ErrWriteOnly = errors.New("property is write-only")

	// ErrUnknownProperty is returned for a name with no registered property.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrNotDynamic is returned when overriding a property that was not
	// declared dynamic.
	ErrNotDynamic = errors.New("property is not dynamic")
)

// InstrumentError is a fault the instrument itself reported, surfaced by the
// error-check hook after a write or query when the property requests it.
type InstrumentError struct {
	Code    int
	Message string
}

func (e *InstrumentError) Error() string {
	return fmt.Sprintf("instrument reported error %d: %s", e.Code, e.Message)
}
