package climate

import (
	"errors"
	"fmt"
)

var (
	// ErrDataFormat matches any *DataFormatError via errors.Is.
	ErrDataFormat = errors.New("data format error")
	// ErrInvalidParameter matches any *InvalidParameterError via errors.Is.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// DataFormatError is returned at load time when the input table cannot be
// turned into a Daily Series (missing column, bad date, non-numeric metric).
type DataFormatError struct {
	Field  string
	Row    int // 1-based data row; 0 when the problem is the header
	Value  string
	Reason string
}

func (e *DataFormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("data format: row %d: %s %q: %s", e.Row, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("data format: %s: %s", e.Field, e.Reason)
}

func (e *DataFormatError) Is(target error) bool { return target == ErrDataFormat }

// InvalidParameterError reports caller misuse of an analysis operation.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

func invalidParam(param string, value any, reason string) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}
