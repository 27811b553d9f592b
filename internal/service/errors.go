package service

import "errors"

var (
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNameRequired is returned when a registration has no name.
	ErrNameRequired = errors.New("name is required")

	// ErrInvalidEmail is returned when an email address is empty or malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword is returned when a password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrInvalidRole is returned when a role is unknown or not self-assignable.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrNotDriver is returned when a driver-only operation targets a non-driver.
	ErrNotDriver = errors.New("user is not a driver")

	// ErrInvalidRiderID is returned when a rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidRideID is returned when a ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidPickupLocation is returned when pickup coordinates are out of range.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidDestinationLocation is returned when destination coordinates are out of range.
	ErrInvalidDestinationLocation = errors.New("invalid destination location")

	// ErrInvalidPaymentMethod is returned when a payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrNotRideOwner is returned when a rider operates on someone else's ride.
	ErrNotRideOwner = errors.New("ride belongs to another rider")

	// ErrRideAlreadyCancelled is returned when cancelling an already cancelled ride.
	ErrRideAlreadyCancelled = errors.New("ride already cancelled")

	// ErrRideCannotBeCancelled is returned when a ride is in a state that cannot be cancelled.
	ErrRideCannotBeCancelled = errors.New("ride cannot be cancelled in current state")
)
