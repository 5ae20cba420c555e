package core

import "errors"

// Subjects errors
var (
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrSubjectInvalidArgs = errors.New("subject invalid args")
)

// Tasks errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskInvalidArgs = errors.New("task invalid args")
)

// Sessions errors
var (
	ErrSessionInvalidArgs = errors.New("session invalid args")
	ErrSessionTimeInvalid = errors.New("session time invalid")
)

// IsValidation reports whether err is caused by bad input rather than by storage.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrSubjectInvalidArgs),
		errors.Is(err, ErrSubjectNotFound),
		errors.Is(err, ErrTaskInvalidArgs),
		errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrSessionInvalidArgs),
		errors.Is(err, ErrSessionTimeInvalid):
		return true
	}
	return false
}
