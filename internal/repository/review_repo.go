package repository

import (
	"context"
	"time"

	"travelapp/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	ListingID    int64      `gorm:"column:listing_id;index"`
	BookingID    int64      `gorm:"column:booking_id;uniqueIndex:idx_one_review_per_booking"`
	GuestID      int64      `gorm:"column:guest_id"`
	Rating       int        `gorm:"column:rating"`
	Comment      *string    `gorm:"column:comment"`
	HostResponse *string    `gorm:"column:host_response"`
	RespondedAt  *time.Time `gorm:"column:responded_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	comment := ""
	if m.Comment != nil {
		comment = *m.Comment
	}
	return &domain.Review{
		ID:           m.ID,
		ListingID:    m.ListingID,
		BookingID:    m.BookingID,
		GuestID:      m.GuestID,
		Rating:       m.Rating,
		Comment:      comment,
		HostResponse: m.HostResponse,
		RespondedAt:  m.RespondedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toReviewModel(r *domain.Review) reviewModel {
	var comment *string
	if r.Comment != "" {
		v := r.Comment
		comment = &v
	}
	return reviewModel{
		ID:           r.ID,
		ListingID:    r.ListingID,
		BookingID:    r.BookingID,
		GuestID:      r.GuestID,
		Rating:       r.Rating,
		Comment:      comment,
		HostResponse: r.HostResponse,
		RespondedAt:  r.RespondedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := toReviewModel(rv)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

func (r *ReviewRepository) GetByListing(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []reviewModel
	tx := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

// SetHostResponse stores the host reply only when none exists yet; a zero
// RowsAffected means a response was already recorded.
func (r *ReviewRepository) SetHostResponse(ctx context.Context, reviewID int64, response string, at time.Time) (*domain.Review, error) {
	res := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("id = ? AND host_response IS NULL", reviewID).
		Updates(map[string]interface{}{
			"host_response": response,
			"responded_at":  at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, reviewID)
}
