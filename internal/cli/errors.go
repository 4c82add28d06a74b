package cli

import (
	"errors"
	"fmt"
)

var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports a command invoked with the wrong arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", e.Usage)
}

func usage(u string) error {
	return &UsageError{Usage: u}
}
