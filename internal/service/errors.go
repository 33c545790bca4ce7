package service

import "errors"

// Failure taxonomy surfaced to handlers. Secondary-write failures
// (payment, audit log, cache) are never represented here; they are
// logged and the triggering operation still succeeds.
var (
	// ErrPortUnavailable means the port is not Available to start on,
	// including losing a race against a concurrent start.
	ErrPortUnavailable = errors.New("port is not available")
	// ErrSessionClosed means the session has already been ended.
	ErrSessionClosed = errors.New("session already closed")
	// ErrNotOwner means the caller does not own the session.
	ErrNotOwner = errors.New("caller does not own session")
	// ErrInvalidStatus means a status value outside the four known ones.
	ErrInvalidStatus = errors.New("invalid port status")
	// ErrInvalidStation means a station payload missing required fields.
	ErrInvalidStation = errors.New("invalid station")
	// ErrInvalidReview means a review outside the accepted shape.
	ErrInvalidReview = errors.New("invalid review")
	// ErrInvalidVehicle means a vehicle payload missing required fields.
	ErrInvalidVehicle = errors.New("invalid vehicle")
)
