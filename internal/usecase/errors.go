package usecase

import "errors"

// Shared failure categories returned by every service. Domain-specific
// rejections (contest full, insufficient balance, roster rules) keep
// their own sentinels; these cover the cross-cutting cases the HTTP
// layer maps to 400/404/401/503.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
