package service

import "errors"

var (
	// ErrInvalidCredentials is returned for a failed login or a wrong
	// current password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned for missing tasks, unknown recovery emails
	// and expired reset tokens.
	ErrNotFound = errors.New("not found")
	// ErrDeleteForbidden is returned when a Restricted account tries to
	// delete a task.
	ErrDeleteForbidden = errors.New("tier does not allow deleting tasks")
	// ErrValidation wraps rejected input (empty title, unknown priority,
	// malformed due date, unknown tier).
	ErrValidation = errors.New("invalid input")
)
