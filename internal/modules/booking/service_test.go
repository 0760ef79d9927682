package booking

import (
	"context"
	"testing"
	"time"

	"travelapp/internal/config"
	"travelapp/internal/domain"
	"travelapp/internal/pkg/clock"
	"travelapp/internal/pkg/keylock"
	"travelapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && b.ID == 0 {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CheckAvailability(ctx context.Context, listingID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, listingID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) GetBlockingSpans(ctx context.Context, listingID int64, from, to time.Time) ([]repository.BlockedSpan, error) {
	args := m.Called(ctx, listingID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BlockedSpan), args.Error(1)
}

func (m *MockBookingRepository) GetNonTerminal(ctx context.Context, listingID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListingIDsWithNonTerminal(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockBookingRepository) GetByListingID(ctx context.Context, listingID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, listingID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID int64, fromStatus, toStatus domain.BookingStatus) error {
	args := m.Called(ctx, bookingID, fromStatus, toStatus)
	return args.Error(0)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, bookingID int64, reason string, at time.Time) error {
	args := m.Called(ctx, bookingID, reason, at)
	return args.Error(0)
}

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) AdjustActiveBookings(ctx context.Context, id int64, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func testConfig() *config.EngineConfig {
	return &config.EngineConfig{
		DefaultBookingStatus: domain.BookingPending,
		AllowInstantBooking:  true,
	}
}

func activeListing() *domain.Listing {
	return &domain.Listing{
		ID:          5,
		HostID:      1,
		Title:       "Cozy Loft in Paris",
		NightlyRate: 100,
		MaxGuests:   4,
		IsActive:    true,
	}
}

func newTestService(bookings *MockBookingRepository, listings *MockListingRepository, now time.Time) *Service {
	index := NewAvailabilityIndex(keylock.New())
	return NewService(bookings, listings, index, clock.NewFixed(now), testConfig())
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	mockListings.On("GetByID", mock.Anything, int64(5)).Return(activeListing(), nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(5), day(10), day(13)).Return(true, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockListings, day(1))

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5,
		GuestID:   42,
		CheckIn:   day(10),
		CheckOut:  day(13),
		Guests:    2,
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 300.0, b.TotalPrice)
	assert.Equal(t, 100.0, b.NightlyRate)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, 1, service.index.Len(5))
}

func TestService_CreateBooking_InvalidRange(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockListingRepository), day(1))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5,
		GuestID:   42,
		CheckIn:   day(13),
		CheckOut:  day(10),
		Guests:    2,
	})

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_CreateBooking_CapacityExceeded(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockListings.On("GetByID", mock.Anything, int64(5)).Return(activeListing(), nil)

	service := newTestService(mockBookings, mockListings, day(1))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5,
		GuestID:   42,
		CheckIn:   day(10),
		CheckOut:  day(13),
		Guests:    5,
	})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_ListingNotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)
	mockListings.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(mockBookings, mockListings, day(1))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 77,
		GuestID:   42,
		CheckIn:   day(10),
		CheckOut:  day(13),
		Guests:    2,
	})

	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestService_CreateBooking_ListingInactive(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	l := activeListing()
	l.IsActive = false
	mockListings.On("GetByID", mock.Anything, int64(5)).Return(l, nil)

	service := newTestService(mockBookings, mockListings, day(1))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5,
		GuestID:   42,
		CheckIn:   day(10),
		CheckOut:  day(13),
		Guests:    2,
	})

	assert.ErrorIs(t, err, ErrListingInactive)
}

func TestService_CreateBooking_DateConflict(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	mockListings.On("GetByID", mock.Anything, int64(5)).Return(activeListing(), nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(true, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockListings, day(1))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5, GuestID: 42, CheckIn: day(10), CheckOut: day(13), Guests: 2,
	})
	assert.NoError(t, err)

	// days 12-15 overlap day 12; rejection is repeatable
	for i := 0; i < 2; i++ {
		_, err = service.CreateBooking(context.Background(), CreateBookingRequest{
			ListingID: 5, GuestID: 43, CheckIn: day(12), CheckOut: day(15), Guests: 2,
		})
		assert.ErrorIs(t, err, ErrDateConflict)
	}

	// days 13-15 touch the check-out boundary only: half-open, admitted
	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5, GuestID: 43, CheckIn: day(13), CheckOut: day(15), Guests: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 200.0, b.TotalPrice)
}

func TestService_CreateBooking_PersistedConflictWins(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	// index is cold but the database already holds a blocking booking
	mockListings.On("GetByID", mock.Anything, int64(5)).Return(activeListing(), nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(false, nil)

	service := newTestService(mockBookings, mockListings, day(1))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5, GuestID: 42, CheckIn: day(10), CheckOut: day(13), Guests: 2,
	})

	assert.ErrorIs(t, err, ErrDateConflict)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_ConfirmedIncrementsOccupancy(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	mockListings.On("GetByID", mock.Anything, int64(5)).Return(activeListing(), nil)
	mockListings.On("AdjustActiveBookings", mock.Anything, int64(5), 1).Return(nil)
	mockBookings.On("CheckAvailability", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(true, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockBookings, mockListings, day(1))

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5, GuestID: 42, CheckIn: day(10), CheckOut: day(13), Guests: 2,
		Status: domain.BookingConfirmed,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	mockListings.AssertExpectations(t)
}

func TestService_CreateBooking_InstantBookingDisabled(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	index := NewAvailabilityIndex(keylock.New())
	cfg := &config.EngineConfig{
		DefaultBookingStatus: domain.BookingPending,
		AllowInstantBooking:  false,
	}
	service := NewService(mockBookings, mockListings, index, clock.NewFixed(day(1)), cfg)

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		ListingID: 5, GuestID: 42, CheckIn: day(10), CheckOut: day(13), Guests: 2,
		Status: domain.BookingConfirmed,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_WarmUp(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	mockBookings.On("ListingIDsWithNonTerminal", mock.Anything).Return([]int64{5}, nil)
	mockBookings.On("GetNonTerminal", mock.Anything, int64(5)).Return([]domain.Booking{
		{ID: 1, ListingID: 5, Status: domain.BookingConfirmed, CheckIn: day(10), CheckOut: day(13)},
	}, nil)

	service := newTestService(mockBookings, mockListings, day(1))

	assert.NoError(t, service.WarmUp(context.Background()))
	assert.True(t, service.index.Conflicts(5, day(12), day(14), 0))
}

func TestService_GetAvailability(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	mockBookings.On("GetBlockingSpans", mock.Anything, int64(5), day(1), day(30)).
		Return([]repository.BlockedSpan{
			{BookingID: 1, CheckIn: day(10), CheckOut: day(13), Status: "confirmed"},
		}, nil)

	service := newTestService(mockBookings, mockListings, day(1))

	resp, err := service.GetAvailability(context.Background(), 5, day(1), day(30))

	assert.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Len(t, resp.BlockedSpans, 1)
	assert.Equal(t, day(10), resp.BlockedSpans[0].CheckIn)
}

func TestService_GetAvailability_Free(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingRepository)

	mockBookings.On("GetBlockingSpans", mock.Anything, int64(5), day(1), day(5)).
		Return([]repository.BlockedSpan{}, nil)

	service := newTestService(mockBookings, mockListings, day(1))

	resp, err := service.GetAvailability(context.Background(), 5, day(1), day(5))

	assert.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.BlockedSpans)
}
