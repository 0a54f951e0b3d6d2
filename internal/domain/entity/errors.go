package entity

import "errors"

var (
	ErrNotLandingPage      = errors.New("not a landing page request")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrInvalidCode         = errors.New("invalid code")
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidProject      = errors.New("invalid project")
)
