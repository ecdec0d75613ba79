package value

import (
	"errors"
	"fmt"
)

var (
	ErrTypeMismatch    = errors.New("value: type mismatch")
	ErrOverflow        = errors.New("value: numeric overflow")
	ErrUnsupportedType = errors.New("value: unsupported native type")
)

// ConversionError is returned when a value cannot be converted to a native
// type. Path locates the offending element inside containers, e.g.
// "[2].name"; it is empty for the top-level value.
type ConversionError struct {
	Target string
	Actual Kind
	Path   string
	Err    error
}

func (err *ConversionError) Error() string {
	location := ""
	if err.Path != "" {
		location = " at " + err.Path
	}

	if errors.Is(err.Err, ErrOverflow) {
		return fmt.Sprintf("cannot convert %s value%s to %s: %v",
			err.Actual, location, err.Target, err.Err)
	}

	return fmt.Sprintf("cannot convert %s value%s to %s",
		err.Actual, location, err.Target)
}

func (err *ConversionError) Unwrap() error {
	return err.Err
}
