package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrNotFound     = errors.New("resource not found")
	ErrTransport    = errors.New("request could not be completed")
)

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
