package ds

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrNotFound           = errors.New("not found")
	ErrRendering          = errors.New("rendering failure")
	ErrStorage            = errors.New("storage failure")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PayloadError is an ErrInvalidPayload with a human readable hint.
type PayloadError struct {
	Msg  string
	Hint string
}

func (e *PayloadError) Error() string { return e.Msg }

func (e *PayloadError) Unwrap() error { return ErrInvalidPayload }

const (
	HintFileKind = "FILE and IMAGE fields require an uploaded file in the value part"
	HintTextKind = "TEXT, NUMBER, DATE, TIME, BOOLEAN and URL fields take a plain value, not a file"
)

func invalidPayload(hint, format string, args ...any) error {
	return &PayloadError{Msg: fmt.Sprintf(format, args...), Hint: hint}
}

// Hint returns the hint attached to err, if any.
func Hint(err error) string {
	var pe *PayloadError
	if errors.As(err, &pe) {
		return pe.Hint
	}
	return ""
}
