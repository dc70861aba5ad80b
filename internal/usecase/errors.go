package usecase

import "errors"

var (
	// ErrNotFound means no record with the requested id exists.
	ErrNotFound = errors.New("not found")
	// ErrValidation covers local input rejections: empty title, empty
	// comment text, out-of-range rating. These never reach the store.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden means the caller is not the author of the record it
	// tried to remove. Enforced here, not by the store.
	ErrForbidden = errors.New("forbidden")
)
