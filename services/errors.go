package services

import "errors"

var (
	// ErrQuotaExceeded is returned when a superlike is submitted with no
	// remaining daily quota.
	ErrQuotaExceeded = errors.New("superlike quota exceeded")

	// ErrProfileNotFound is returned when a viewer or target profile row
	// does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrLocationRequired is returned when the classic candidate pool is
	// requested by a viewer with no configured location.
	ErrLocationRequired = errors.New("viewer location not configured")

	// ErrEventNotFound is returned for operations on an unknown event.
	ErrEventNotFound = errors.New("event not found")
)
