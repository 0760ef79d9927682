package review

import (
	"context"
	"errors"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/pkg/clock"
	"travelapp/internal/pkg/keylock"

	"gorm.io/gorm"
)

// BookingGate is the booking-side lookup the aggregator needs: a review is
// only valid against an existing, completed booking.
type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error)
	GetByListing(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error)
	SetHostResponse(ctx context.Context, reviewID int64, response string, at time.Time) (*domain.Review, error)
}

type ListingAggregates interface {
	ApplyReviewRating(ctx context.Context, id int64, rating int) error
}

type Service struct {
	reviews  ReviewRepository
	bookings BookingGate
	listings ListingAggregates
	locks    *keylock.KeyLock
	clock    clock.Clock
}

func NewService(
	reviews ReviewRepository,
	bookings BookingGate,
	listings ListingAggregates,
	locks *keylock.KeyLock,
	clk clock.Clock,
) *Service {
	return &Service{
		reviews:  reviews,
		bookings: bookings,
		listings: listings,
		locks:    locks,
		clock:    clk,
	}
}

// SubmitReview persists the review and folds its rating into the listing's
// cached average. newAvg = (oldAvg*oldCount + rating) / (oldCount + 1),
// applied under the listing's exclusive lock.
func (s *Service) SubmitReview(ctx context.Context, req SubmitReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if req.BookingID <= 0 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotEligible
		}
		return nil, err
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotEligible
	}

	if _, err := s.reviews.GetByBookingID(ctx, req.BookingID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rv := &domain.Review{
		ListingID: b.ListingID,
		BookingID: b.ID,
		GuestID:   b.GuestID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err = s.locks.Do(b.ListingID, func() error {
		if err := s.reviews.Create(ctx, rv); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateReview
			}
			return err
		}
		return s.listings.ApplyReviewRating(ctx, b.ListingID, req.Rating)
	})
	if err != nil {
		return nil, err
	}

	return rv, nil
}

// AddHostResponse attaches the host's reply; a review carries at most one.
func (s *Service) AddHostResponse(ctx context.Context, reviewID int64, response string) (*domain.Review, error) {
	if reviewID <= 0 || response == "" {
		return nil, ErrValidation
	}

	if _, err := s.reviews.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	updated, err := s.reviews.SetHostResponse(ctx, reviewID, response, s.clock.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseAlreadyExists
		}
		return nil, err
	}
	return updated, nil
}

func (s *Service) GetByListing(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error) {
	if listingID <= 0 {
		return nil, ErrValidation
	}
	return s.reviews.GetByListing(ctx, listingID, limit, offset)
}

func isUniqueViolation(err error) bool {
	s := err.Error()
	return contains(s, "duplicate key value violates unique constraint") ||
		contains(s, "UNIQUE constraint failed") ||
		contains(s, "23505")
}

func contains(s, sub string) bool {
	if len(sub) == 0 {
		return true
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
