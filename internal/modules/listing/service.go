package listing

import (
	"context"
	"errors"
	"strings"

	"travelapp/internal/domain"
	"travelapp/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	listings ListingRepository
}

func NewService(listings ListingRepository) *Service {
	return &Service{listings: listings}
}

func (s *Service) Create(ctx context.Context, req CreateListingRequest) (*domain.Listing, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	l := &domain.Listing{
		HostID:       req.HostID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		MaxGuests:    req.MaxGuests,
		Amenities:    req.Amenities,
		NightlyRate:  req.NightlyRate,
		WeeklyRate:   req.WeeklyRate,
		CleaningFee:  req.CleaningFee,
		IsActive:     true,
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) List(ctx context.Context, f ListFilters) (*ListingPage, error) {
	items, total, err := s.listings.GetAll(ctx, repository.ListingFilters{
		City:         f.City,
		Country:      f.Country,
		PropertyType: f.PropertyType,
		ActiveOnly:   f.ActiveOnly,
		Limit:        f.Limit,
		Offset:       f.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ListingPage{Items: items, Total: total}, nil
}

// Deactivate takes the listing off the market. Refused while any pending or
// confirmed booking exists; cancel or complete those first.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	cnt, err := s.listings.CountNonTerminalBookings(ctx, id)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrListingHasActiveBookings
	}

	if err := s.listings.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Activate(ctx context.Context, id int64) error {
	if err := s.listings.SetActive(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validateCreate(req CreateListingRequest) error {
	if req.HostID <= 0 || strings.TrimSpace(req.Title) == "" {
		return ErrValidation
	}
	if !req.PropertyType.Valid() {
		return ErrValidation
	}
	if req.Bedrooms < 1 || req.Bathrooms < 1 || req.MaxGuests < 1 {
		return ErrValidation
	}
	if req.NightlyRate <= 0 {
		return ErrValidation
	}
	if req.WeeklyRate != nil && *req.WeeklyRate <= 0 {
		return ErrValidation
	}
	if req.CleaningFee < 0 {
		return ErrValidation
	}
	return nil
}
