package domain

import "errors"

// ErrBusy is returned when a guarded transition is refused because an animation
// or a reset is in flight.
var ErrBusy = errors.New("visualization is busy")

// ErrUnsupportedOperation is returned by a visualizer that does not implement an operation.
var ErrUnsupportedOperation = errors.New("operation not supported by this algorithm")

// ErrContainerNotFound is returned when a page has no container with the requested ID.
var ErrContainerNotFound = errors.New("container not found")

// ErrInvalidAlgorithmName is returned when a name does not match the identifier grammar.
var ErrInvalidAlgorithmName = errors.New("invalid algorithm name")

// ErrMalformedCookie is returned when a persisted cookie entry cannot be parsed.
var ErrMalformedCookie = errors.New("malformed cookie entry")

// ErrPageNotFound is returned when a page ID cannot be found in the store.
var ErrPageNotFound = errors.New("page not found")
