package services

import "errors"

var (
	// ErrInvalidArgument marks a rejected request: non-positive limit or
	// radius, out-of-range coordinates, malformed numeric filters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRecordNotFound is returned by single-record lookups only.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDataUnavailable is raised when the data provider yields nothing.
	// The catalogue recovers from it locally; callers never see it.
	ErrDataUnavailable = errors.New("data unavailable")
)
