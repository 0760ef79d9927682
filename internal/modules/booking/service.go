package booking

import (
	"context"
	"errors"
	"time"

	"travelapp/internal/config"
	"travelapp/internal/domain"
	"travelapp/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	listings ListingRepository
	index    *AvailabilityIndex
	clock    clock.Clock

	defaultStatus domain.BookingStatus
	allowInstant  bool
}

func NewService(
	bookings BookingRepository,
	listings ListingRepository,
	index *AvailabilityIndex,
	clk clock.Clock,
	cfg *config.EngineConfig,
) *Service {
	return &Service{
		bookings:      bookings,
		listings:      listings,
		index:         index,
		clock:         clk,
		defaultStatus: cfg.DefaultBookingStatus,
		allowInstant:  cfg.AllowInstantBooking,
	}
}

// WarmUp rebuilds the availability index from persisted non-terminal
// bookings. Call it once after Connect, before serving admissions.
func (s *Service) WarmUp(ctx context.Context) error {
	ids, err := s.bookings.ListingIDsWithNonTerminal(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		rows, err := s.bookings.GetNonTerminal(ctx, id)
		if err != nil {
			return err
		}
		s.index.Rebuild(id, rows)
	}
	return nil
}

// CreateBooking is the single write path that can produce ErrDateConflict.
// The overlap check, price lock and insert run as one atomic unit under the
// listing's lock; a failed admission leaves no record and no index entry.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	checkIn := normalizeDate(req.CheckIn)
	checkOut := normalizeDate(req.CheckOut)

	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}
	if req.GuestID <= 0 || req.Guests < 1 {
		return nil, ErrValidation
	}

	status, err := s.resolveStatus(req.Status)
	if err != nil {
		return nil, err
	}

	listing, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !listing.IsActive {
		return nil, ErrListingInactive
	}
	if req.Guests > listing.MaxGuests {
		return nil, ErrCapacityExceeded
	}

	quote, err := Quote(RateCardFor(listing), checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Reference:   uuid.NewString(),
		ListingID:   listing.ID,
		GuestID:     req.GuestID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      req.Guests,
		NightlyRate: quote.NightlyRate,
		Subtotal:    quote.Subtotal,
		TotalPrice:  quote.Total,
		Status:      status,
	}

	err = s.index.Do(listing.ID, func() error {
		if s.index.Conflicts(listing.ID, checkIn, checkOut, 0) {
			return ErrDateConflict
		}

		ok, err := s.bookings.CheckAvailability(ctx, listing.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDateConflict
		}

		if err := s.bookings.Create(ctx, b); err != nil {
			if isExclusionViolation(err) {
				return ErrDateConflict
			}
			return err
		}

		if status == domain.BookingConfirmed {
			if err := s.listings.AdjustActiveBookings(ctx, listing.ID, 1); err != nil {
				return err
			}
		}

		s.index.Insert(listing.ID, b.ID, checkIn, checkOut)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) resolveStatus(requested domain.BookingStatus) (domain.BookingStatus, error) {
	if requested == "" {
		requested = s.defaultStatus
	}
	switch requested {
	case domain.BookingPending:
		return requested, nil
	case domain.BookingConfirmed:
		if !s.allowInstant {
			return "", ErrValidation
		}
		return requested, nil
	default:
		return "", ErrValidation
	}
}

// GetByID retrieves a booking by ID
func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListBookingsForListing(ctx context.Context, listingID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.GetByListingID(ctx, listingID, limit, offset)
}

// GetAvailability reports the blocked spans intersecting [from, to) and
// whether the whole range is free.
func (s *Service) GetAvailability(ctx context.Context, listingID int64, from, to time.Time) (*AvailabilityResponse, error) {
	from = normalizeDate(from)
	to = normalizeDate(to)
	if !to.After(from) {
		return nil, ErrInvalidRange
	}

	rows, err := s.bookings.GetBlockingSpans(ctx, listingID, from, to)
	if err != nil {
		return nil, err
	}

	blocked := make([]DateSpan, 0, len(rows))
	for _, r := range rows {
		blocked = append(blocked, DateSpan{CheckIn: r.CheckIn, CheckOut: r.CheckOut})
	}

	return &AvailabilityResponse{
		ListingID:    listingID,
		From:         from,
		To:           to,
		Available:    len(blocked) == 0,
		BlockedSpans: blocked,
	}, nil
}

// isExclusionViolation recognizes a Postgres unique or exclusion constraint
// hit on the booking range. The in-process lock makes this unreachable in a
// single process; a second writer on the same database still gets a clean
// ErrDateConflict.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
