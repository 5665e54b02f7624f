package service

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("you do not have access to this resource")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrAccountDisabled    = errors.New("account is disabled")

	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrStartDateInPast    = errors.New("start date must not be in the past")
	ErrVehicleNotBookable = errors.New("vehicle is not available for booking")
	ErrDatesUnavailable   = errors.New("vehicle is already booked for the selected dates")
	ErrOwnBooking         = errors.New("owners cannot book their own vehicle")

	ErrPaymentNotPending = errors.New("payment is not awaiting verification")
	ErrSignatureMismatch = errors.New("payment signature verification failed")
	ErrNotRefundable     = errors.New("payment is not awaiting a refund")

	ErrBookingNotActive  = errors.New("booking is not active")
	ErrBookingStarted    = errors.New("booking cannot be cancelled on or after its start date")
	ErrBookingNotEnded   = errors.New("booking has not ended yet")
	ErrVehicleHasBooking = errors.New("vehicle has active bookings")

	ErrBookingNotCompleted = errors.New("booking is not completed yet")
	ErrAlreadyReviewed     = errors.New("booking already has a review")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)
