package domain

import "time"

type Review struct {
	ID        int64 `json:"id"`
	ListingID int64 `json:"listing_id" gorm:"index"`
	BookingID int64 `json:"booking_id" gorm:"uniqueIndex:idx_one_review_per_booking"`
	GuestID   int64 `json:"guest_id"`

	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty" gorm:"type:text"`

	HostResponse *string    `json:"host_response,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasHostResponse reports whether the host already replied to the review.
func (r *Review) HasHostResponse() bool {
	return r.HostResponse != nil && *r.HostResponse != ""
}
