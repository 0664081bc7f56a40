package repository

import "errors"

var (
	// ErrNotFound is returned when a ride, booking, user or session lookup
	// finds no matching record.
	ErrNotFound = errors.New("record not found")
)
