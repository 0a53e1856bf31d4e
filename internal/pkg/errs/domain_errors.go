package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Booking session errors
	ErrSessionNotFound      = errors.New("booking session not found")
	ErrNoSelection          = errors.New("no table selected")
	ErrSubmissionInProgress = errors.New("submission already in progress")

	// Candidate / input errors
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time")
	ErrMissingCandidate = errors.New("date and time are required")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotModifiable       = errors.New("reservation can no longer be modified")

	// Operation markers
	ErrStoreOperationFailed = errors.New("reservation store operation failed")
)
