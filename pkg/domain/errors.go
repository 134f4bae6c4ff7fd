package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a domain object that fails its own consistency
// rules. The message is intended to be shown to exploration editors.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Sentinel errors returned by graph mutations. Callers match them with
// errors.Is.
var (
	ErrStateNotFound        = errors.New("state not found")
	ErrDuplicateStateName   = errors.New("duplicate state name")
	ErrInitialStateDeletion = errors.New("cannot delete initial state")
	ErrGadgetNotFound       = errors.New("gadget not found")
	ErrDuplicateGadgetName  = errors.New("duplicate gadget name")
	ErrPanelNotFound        = errors.New("gadget panel not found")
)
