package janitor

import "errors"

var (
	// ErrRequestNotFound indicates the broker has no such request.
	ErrRequestNotFound = errors.New("request not found")

	// ErrNotAvailable indicates an operation on media that is not yet
	// available, such as extending a pending request.
	ErrNotAvailable = errors.New("media not available")

	// ErrInconsistent indicates media files were removed but the broker
	// records could not be deleted afterwards. Operator attention is
	// needed; the broker now references media that no longer exists.
	ErrInconsistent = errors.New("broker records out of sync with library")
)
