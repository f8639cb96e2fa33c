package service

import "errors"

var (
	// ErrFetchFailed wraps a collaborator read error. The last known list is
	// returned alongside it.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrUpdateFailed wraps a collaborator write error. In-memory state is unchanged.
	ErrUpdateFailed = errors.New("update failed")
	// ErrMessageNotFound is wrapped in ErrUpdateFailed when the id does not exist.
	ErrMessageNotFound = errors.New("message not found")
	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)
