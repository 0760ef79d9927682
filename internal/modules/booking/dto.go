package booking

import (
	"time"

	"travelapp/internal/domain"
)

type CreateBookingRequest struct {
	ListingID int64     `json:"listing_id" binding:"required"`
	GuestID   int64     `json:"guest_id" binding:"required"`
	CheckIn   time.Time `json:"check_in" binding:"required"`
	CheckOut  time.Time `json:"check_out" binding:"required"`
	Guests    int       `json:"guests" binding:"required"`

	// Empty means the configured default. Only pending and confirmed are
	// accepted, and confirmed only when instant booking is enabled.
	Status domain.BookingStatus `json:"status,omitempty"`
}

type DateSpan struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

type AvailabilityResponse struct {
	ListingID    int64      `json:"listing_id"`
	From         time.Time  `json:"from"`
	To           time.Time  `json:"to"`
	Available    bool       `json:"available"`
	BlockedSpans []DateSpan `json:"blocked_spans"`
}
