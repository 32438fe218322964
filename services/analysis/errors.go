package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine is returned for lines that are not of the form "<TAG>: <timestamp>" or carry an unknown tag
	ErrMalformedLine = errors.New("malformed line")
	// ErrUnexpectedToken is returned for a START while awaiting a FINISH or a FINISH while awaiting a START
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrTimestampParse is returned when a timestamp doesn't match the configured time format
	ErrTimestampParse = errors.New("timestamp does not match time format")
)

// LineError identifies the offending line of a failed analysis run
type LineError struct {
	LineNumber int
	Line       string
	Kind       error
	Err        error
}

func (e *LineError) Error() string {
	message := e.Kind.Error()
	if e.Err != nil {
		message = fmt.Sprintf("%v: %v", message, e.Err)
	}
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %v \"%v\": %v", e.LineNumber, e.Line, message)
	}
	return fmt.Sprintf("line \"%v\": %v", e.Line, message)
}

// Is reports whether target is the kind of this error
func (e *LineError) Is(target error) bool {
	return target == e.Kind
}

func (e *LineError) Unwrap() error {
	return e.Err
}
