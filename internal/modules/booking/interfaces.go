package booking

import (
	"context"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/repository"
)

// BookingRepository defines the persistence operations the engine needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, listingID int64, start, end time.Time) (bool, error)
	GetBlockingSpans(ctx context.Context, listingID int64, from, to time.Time) ([]repository.BlockedSpan, error)
	GetNonTerminal(ctx context.Context, listingID int64) ([]domain.Booking, error)
	ListingIDsWithNonTerminal(ctx context.Context) ([]int64, error)
	GetByListingID(ctx context.Context, listingID int64, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, fromStatus, toStatus domain.BookingStatus) error
	Cancel(ctx context.Context, bookingID int64, reason string, at time.Time) error
}

// ListingRepository is the listing-side surface the engine touches: lookups
// and the cached confirmed-booking counter.
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	AdjustActiveBookings(ctx context.Context, id int64, delta int) error
}
