package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Blocking reports whether a booking in this status occupies its date range.
func (s BookingStatus) Blocking() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference" gorm:"uniqueIndex"`
	ListingID int64  `json:"listing_id" validate:"required" gorm:"index:idx_listing_dates"`
	GuestID   int64  `json:"guest_id" validate:"required"`

	CheckIn  time.Time `json:"check_in" validate:"required" gorm:"index:idx_listing_dates"`
	CheckOut time.Time `json:"check_out" validate:"required" gorm:"index:idx_listing_dates"`
	Guests   int       `json:"guests" validate:"required,gte=1"`

	// Price fields are locked at creation and never change afterwards.
	NightlyRate float64 `json:"nightly_rate"`
	Subtotal    float64 `json:"subtotal"`
	TotalPrice  float64 `json:"total_price"`

	Status             BookingStatus `json:"status"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// Nights is the whole-day length of the half-open [CheckIn, CheckOut) range.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
