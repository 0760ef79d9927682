package booking

import (
	"context"
	"errors"

	"travelapp/internal/domain"

	"gorm.io/gorm"
)

// Transition moves a booking through the pending → confirmed →
// completed/cancelled state machine. The status update and the availability
// index change are one atomic unit under the listing's lock; on any error
// the prior state is untouched.
func (s *Service) Transition(ctx context.Context, bookingID int64, newStatus domain.BookingStatus, reason string) (*domain.Booking, error) {
	switch newStatus {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled:
	default:
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	err = s.index.Do(b.ListingID, func() error {
		switch {
		case b.Status == domain.BookingPending && newStatus == domain.BookingConfirmed:
			return s.confirm(ctx, b)
		case b.Status.Blocking() && newStatus == domain.BookingCancelled:
			return s.cancel(ctx, b, reason)
		case b.Status == domain.BookingConfirmed && newStatus == domain.BookingCompleted:
			return s.complete(ctx, b)
		default:
			return ErrInvalidTransition
		}
	})
	if err != nil {
		return nil, err
	}

	return s.bookings.GetByID(ctx, bookingID)
}

// confirm closes the pending window. Allowed only before check-in, with a
// defensive overlap re-check: admission locking makes a new conflict
// structurally impossible, but a second writer on the same database is not.
func (s *Service) confirm(ctx context.Context, b *domain.Booking) error {
	if !s.clock.Now().Before(b.CheckIn) {
		return ErrInvalidTransition
	}

	if s.index.Conflicts(b.ListingID, b.CheckIn, b.CheckOut, b.ID) {
		return ErrDateConflict
	}
	ok, err := s.hasNoOtherBlocking(ctx, b)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDateConflict
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingPending, domain.BookingConfirmed); err != nil {
		return err
	}
	return s.listings.AdjustActiveBookings(ctx, b.ListingID, 1)
}

func (s *Service) cancel(ctx context.Context, b *domain.Booking, reason string) error {
	if err := s.bookings.Cancel(ctx, b.ID, reason, s.clock.Now()); err != nil {
		return err
	}
	s.index.Remove(b.ListingID, b.ID)
	if b.Status == domain.BookingConfirmed {
		return s.listings.AdjustActiveBookings(ctx, b.ListingID, -1)
	}
	return nil
}

// complete releases the date range once the stay is over; the booking stays
// eligible for a review.
func (s *Service) complete(ctx context.Context, b *domain.Booking) error {
	if s.clock.Now().Before(b.CheckOut) {
		return ErrNotYetEligible
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingCompleted); err != nil {
		return err
	}
	s.index.Remove(b.ListingID, b.ID)
	return s.listings.AdjustActiveBookings(ctx, b.ListingID, -1)
}

func (s *Service) hasNoOtherBlocking(ctx context.Context, b *domain.Booking) (bool, error) {
	spans, err := s.bookings.GetBlockingSpans(ctx, b.ListingID, b.CheckIn, b.CheckOut)
	if err != nil {
		return false, err
	}
	for _, sp := range spans {
		if sp.BookingID != b.ID {
			return false, nil
		}
	}
	return true, nil
}
