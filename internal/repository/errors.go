package repository

import "errors"

var (
	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already taken")
	// ErrQuotaExceeded is returned when a task insert would push a user past
	// the tier's task limit.
	ErrQuotaExceeded = errors.New("task quota exceeded")
)
