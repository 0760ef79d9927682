package repository

import (
	"context"
	"time"

	"travelapp/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	Reference          string     `gorm:"column:reference;uniqueIndex"`
	ListingID          int64      `gorm:"column:listing_id;index:idx_listing_dates"`
	GuestID            int64      `gorm:"column:guest_id"`
	CheckIn            time.Time  `gorm:"column:check_in;index:idx_listing_dates"`
	CheckOut           time.Time  `gorm:"column:check_out;index:idx_listing_dates"`
	Guests             int        `gorm:"column:guests"`
	NightlyRate        float64    `gorm:"column:nightly_rate"`
	Subtotal           float64    `gorm:"column:subtotal"`
	TotalPrice         float64    `gorm:"column:total_price"`
	Status             string     `gorm:"column:status"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var reason string
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		Reference:          m.Reference,
		ListingID:          m.ListingID,
		GuestID:            m.GuestID,
		CheckIn:            m.CheckIn,
		CheckOut:           m.CheckOut,
		Guests:             m.Guests,
		NightlyRate:        m.NightlyRate,
		Subtotal:           m.Subtotal,
		TotalPrice:         m.TotalPrice,
		Status:             domain.BookingStatus(m.Status),
		CancellationReason: reason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var reason *string
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:                 b.ID,
		Reference:          b.Reference,
		ListingID:          b.ListingID,
		GuestID:            b.GuestID,
		CheckIn:            b.CheckIn,
		CheckOut:           b.CheckOut,
		Guests:             b.Guests,
		NightlyRate:        b.NightlyRate,
		Subtotal:           b.Subtotal,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		CancellationReason: reason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		CancelledAt:        b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// CheckAvailability reports whether [start, end) is free of pending/confirmed
// bookings for the listing. Half-open ranges: check_in < end AND start < check_out.
func (r *BookingRepository) CheckAvailability(ctx context.Context, listingID int64, start, end time.Time) (bool, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE listing_id = ?
  AND status IN ('pending', 'confirmed')
  AND check_in < ? AND ? < check_out
`
	tx := r.db.WithContext(ctx).Raw(q, listingID, end, start).Scan(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

type BlockedSpan struct {
	BookingID int64
	CheckIn   time.Time
	CheckOut  time.Time
	Status    string
}

// GetBlockingSpans returns the pending/confirmed date ranges for a listing
// that intersect [from, to), ordered by check-in.
func (r *BookingRepository) GetBlockingSpans(ctx context.Context, listingID int64, from, to time.Time) ([]BlockedSpan, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("listing_id = ? AND status IN ? AND check_in < ? AND ? < check_out",
			listingID,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)},
			to, from).
		Order("check_in ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]BlockedSpan, 0, len(rows))
	for _, m := range rows {
		out = append(out, BlockedSpan{
			BookingID: m.ID,
			CheckIn:   m.CheckIn,
			CheckOut:  m.CheckOut,
			Status:    m.Status,
		})
	}
	return out, nil
}

// GetNonTerminal returns every pending/confirmed booking for the listing,
// used to rebuild the in-memory availability index.
func (r *BookingRepository) GetNonTerminal(ctx context.Context, listingID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("listing_id = ? AND status IN ?", listingID,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Order("check_in ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListingIDsWithNonTerminal lists every listing that currently has at least
// one pending/confirmed booking.
func (r *BookingRepository) ListingIDsWithNonTerminal(ctx context.Context) ([]int64, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Distinct("listing_id").
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Pluck("listing_id", &ids)
	return ids, tx.Error
}

func (r *BookingRepository) GetByListingID(ctx context.Context, listingID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdateStatus moves the booking to status only if it still is in fromStatus,
// so a lost race shows up as RowsAffected == 0 rather than a silent overwrite.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, fromStatus, toStatus domain.BookingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", bookingID, string(fromStatus)).
		Update("status", string(toStatus))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Cancel records the terminal cancelled state together with its reason.
func (r *BookingRepository) Cancel(ctx context.Context, bookingID int64, reason string, at time.Time) error {
	updates := map[string]interface{}{
		"status":       string(domain.BookingCancelled),
		"cancelled_at": at,
	}
	if reason != "" {
		updates["cancellation_reason"] = reason
	}

	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status IN ?", bookingID,
			[]string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
