package repository

import (
	"context"

	"travelapp/internal/domain"

	"gorm.io/gorm"
)

type ListingFilters struct {
	City         string
	Country      string
	PropertyType string
	ActiveOnly   bool
	Limit        int
	Offset       int
}

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// GetByID fetches a listing by its ID
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.WithContext(ctx).
		Where("listings.id = ? AND deleted_at IS NULL", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetAll returns listings with optional filters
func (r *ListingRepository) GetAll(
	ctx context.Context,
	f ListingFilters,
) ([]domain.Listing, int64, error) {

	var listings []domain.Listing
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("deleted_at IS NULL")

	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	q.Count(&total)

	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&listings).Error

	return listings, total, err
}

func (r *ListingRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustActiveBookings shifts the cached non-terminal booking counter by delta.
func (r *ListingRepository) AdjustActiveBookings(ctx context.Context, id int64, delta int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("id = ?", id).
		Update("active_bookings", gorm.Expr("active_bookings + ?", delta)).Error
}

// ApplyReviewRating folds one new rating into the cached average using
// rating = (rating*total_reviews + new) / (total_reviews + 1).
func (r *ListingRepository) ApplyReviewRating(ctx context.Context, id int64, rating int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":        gorm.Expr("(rating * total_reviews + ?) * 1.0 / (total_reviews + 1)", rating),
			"total_reviews": gorm.Expr("total_reviews + 1"),
		}).Error
}

// RecomputeAggregates rebuilds the cached rating, review count and confirmed
// booking counter from the reviews and bookings tables. The cached fields are
// a cache, not the source of truth; this is the ground truth they must match.
func (r *ListingRepository) RecomputeAggregates(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Listing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating": gorm.Expr(
				"COALESCE((SELECT AVG(rating * 1.0) FROM reviews WHERE reviews.listing_id = listings.id), 0)"),
			"total_reviews": gorm.Expr(
				"(SELECT COUNT(1) FROM reviews WHERE reviews.listing_id = listings.id)"),
			"active_bookings": gorm.Expr(
				"(SELECT COUNT(1) FROM bookings WHERE bookings.listing_id = listings.id AND bookings.status = ?)",
				string(domain.BookingConfirmed)),
		}).Error
}

// CountNonTerminalBookings reports how many pending or confirmed bookings the
// listing still has; deactivation is blocked while any exist.
func (r *ListingRepository) CountNonTerminalBookings(ctx context.Context, id int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("listing_id = ? AND status IN ?", id,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Count(&cnt).Error
	return cnt, err
}
