package api

import "errors"

// Sentinels the client derives from response status codes. Callers branch
// with errors.Is; the wrapped message carries the server's detail text.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)
