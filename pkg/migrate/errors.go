package migrate

import (
	"errors"
	"fmt"
)

// ConversionError reports a schema step that met a shape it cannot convert.
// The migration is aborted; no partially migrated tree is returned.
type ConversionError struct {
	Message string
}

func (e *ConversionError) Error() string {
	return e.Message
}

// Conversionf builds a ConversionError from a format string.
func Conversionf(format string, args ...any) error {
	return &ConversionError{Message: fmt.Sprintf(format, args...)}
}

// IsConversionError reports whether err is a ConversionError.
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}
