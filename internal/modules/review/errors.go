package review

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrBookingNotEligible    = errors.New("booking is not eligible for review")
	ErrDuplicateReview       = errors.New("booking already has a review")
	ErrReviewNotFound        = errors.New("review not found")
	ErrResponseAlreadyExists = errors.New("review already has a host response")
)
