package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidRange      = errors.New("check-out must be after check-in")
	ErrCapacityExceeded  = errors.New("guest count exceeds listing capacity")
	ErrListingNotFound   = errors.New("listing not found")
	ErrListingInactive   = errors.New("listing is not active")
	ErrDateConflict      = errors.New("date range conflicts with an existing booking")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotYetEligible    = errors.New("booking is not yet eligible for this transition")
	ErrBookingNotFound   = errors.New("booking not found")
)
