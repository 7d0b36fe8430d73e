package model

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when a presented credential is invalid,
	// expired, or already consumed. It is deliberately uninformative:
	// callers must not be able to distinguish the three cases.
	ErrUnauthorized = errors.New("unauthorized")
)
