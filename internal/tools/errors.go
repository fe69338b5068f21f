package tools

import "errors"

// Registry and grammar errors.
var (
	// ErrNoCapabilities is returned instead of constructing a grammar from
	// an empty registry. Callers must check it before unwrapping a grammar.
	ErrNoCapabilities = errors.New("no capabilities registered")

	// ErrCapabilityNotFound is returned when a name is not registered.
	ErrCapabilityNotFound = errors.New("capability not found")

	// ErrMalformedStep is returned when a parsed step value does not have
	// the shape the step grammar produces.
	ErrMalformedStep = errors.New("malformed step value")
)
