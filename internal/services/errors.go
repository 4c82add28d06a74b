package services

import "errors"

// ErrNoHistory is returned by History when the service was built without a
// history repository.
var ErrNoHistory = errors.New("history is not available")
