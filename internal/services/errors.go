package services

import "errors"

var (
	// ErrForbidden means the permission check denied the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the target resource does not exist.
	ErrNotFound = errors.New("not found")
)
