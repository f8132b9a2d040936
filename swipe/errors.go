package swipe

import "errors"

var (
	// ErrQuotaExceeded means the superlike was refused for lack of
	// remaining daily quota, either by the local gate or upstream.
	ErrQuotaExceeded = errors.New("superlike quota exceeded")

	// ErrLocationRequired means the candidate source cannot rank the
	// classic pool until the viewer configures a location.
	ErrLocationRequired = errors.New("viewer location not configured")
)
