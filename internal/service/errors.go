package service

import "errors"

var (
	// ErrDuplicateEmail is returned when registering with an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned when no user matches the given
	// email and secret.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNoSession is returned when an operation requires an authenticated
	// user and the token has no session.
	ErrNoSession = errors.New("no active session")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidRideSpec is returned when an offered ride has non-positive
	// seats or distance, or a negative price.
	ErrInvalidRideSpec = errors.New("invalid ride spec")

	// ErrNoSeatsAvailable is returned when booking a ride with no seats left.
	ErrNoSeatsAvailable = errors.New("no seats available")

	// ErrRideNotActive is returned when a lifecycle operation requires an
	// active ride.
	ErrRideNotActive = errors.New("ride not active")

	// ErrNotRideOwner is returned when a ride lifecycle change is attempted
	// by someone other than the offering driver.
	ErrNotRideOwner = errors.New("not the ride owner")

	// ErrRideLocked is returned when the booking lock for a ride is held by
	// another booking in flight.
	ErrRideLocked = errors.New("ride is being booked, retry")

	// ErrInvalidSignup is returned when signup fields are missing.
	ErrInvalidSignup = errors.New("name, email and password are required")
)
