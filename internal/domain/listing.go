package domain

import "time"

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyCondo     PropertyType = "condo"
	PropertyCabin     PropertyType = "cabin"
	PropertyVilla     PropertyType = "villa"
	PropertyOther     PropertyType = "other"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyApartment, PropertyHouse, PropertyCondo, PropertyCabin, PropertyVilla, PropertyOther:
		return true
	}
	return false
}

type Listing struct {
	ID           int64        `json:"id"`
	HostID       int64        `json:"host_id" validate:"required"`
	Title        string       `json:"title" validate:"required"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	PropertyType PropertyType `json:"property_type" validate:"required"`

	Address string `json:"address,omitempty"`
	City    string `json:"city"`
	Country string `json:"country"`

	Bedrooms  int      `json:"bedrooms" validate:"required,gte=1"`
	Bathrooms int      `json:"bathrooms" validate:"required,gte=1"`
	MaxGuests int      `json:"max_guests" validate:"required,gte=1"`
	Amenities []string `json:"amenities,omitempty" gorm:"serializer:json"`

	NightlyRate float64  `json:"nightly_rate" validate:"required,gt=0"`
	WeeklyRate  *float64 `json:"weekly_rate,omitempty"`
	CleaningFee float64  `json:"cleaning_fee,omitempty"`

	IsActive bool `json:"is_active"`

	// Cached aggregates, recomputable from reviews/bookings.
	Rating         float64 `json:"rating"`
	TotalReviews   int     `json:"total_reviews"`
	ActiveBookings int     `json:"active_bookings"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}
