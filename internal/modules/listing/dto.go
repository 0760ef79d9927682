package listing

import "travelapp/internal/domain"

type CreateListingRequest struct {
	HostID       int64               `json:"host_id" validate:"required,gt=0"`
	Title        string              `json:"title" validate:"required"`
	Description  string              `json:"description,omitempty"`
	PropertyType domain.PropertyType `json:"property_type" validate:"required"`
	Address      string              `json:"address,omitempty"`
	City         string              `json:"city"`
	Country      string              `json:"country"`
	Bedrooms     int                 `json:"bedrooms" validate:"required,gte=1"`
	Bathrooms    int                 `json:"bathrooms" validate:"required,gte=1"`
	MaxGuests    int                 `json:"max_guests" validate:"required,gte=1"`
	Amenities    []string            `json:"amenities,omitempty"`
	NightlyRate  float64             `json:"nightly_rate" validate:"required,gt=0"`
	WeeklyRate   *float64            `json:"weekly_rate,omitempty"`
	CleaningFee  float64             `json:"cleaning_fee,omitempty"`
}

type ListFilters struct {
	City         string
	Country      string
	PropertyType string
	ActiveOnly   bool
	Limit        int
	Offset       int
}

type ListingPage struct {
	Items []domain.Listing `json:"items"`
	Total int64            `json:"total"`
}
