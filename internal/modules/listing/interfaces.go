package listing

import (
	"context"

	"travelapp/internal/domain"
	"travelapp/internal/repository"
)

// ListingRepository defines the persistence surface for the catalog.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	GetAll(ctx context.Context, f repository.ListingFilters) ([]domain.Listing, int64, error)
	SetActive(ctx context.Context, id int64, active bool) error
	CountNonTerminalBookings(ctx context.Context, id int64) (int64, error)
	RecomputeAggregates(ctx context.Context, id int64) error
}
