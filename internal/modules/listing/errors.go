package listing

import "errors"

var (
	ErrValidation               = errors.New("validation error")
	ErrNotFound                 = errors.New("listing not found")
	ErrListingHasActiveBookings = errors.New("listing still has pending or confirmed bookings")
)
