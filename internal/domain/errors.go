package domain

import "errors"

// ErrInvalidInput marks a malformed request: an empty turn list, or a last
// turn not authored by the user. The pipeline does not run at all.
var ErrInvalidInput = errors.New("invalid input")

// ErrUpstream marks a failed final-generation call. Unlike classifier or
// search failures, which degrade locally, this one crosses the service
// boundary as a server error.
var ErrUpstream = errors.New("upstream generation failed")

// ErrNotFound marks a lookup miss in any of the stores.
var ErrNotFound = errors.New("not found")
