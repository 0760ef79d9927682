package booking

import (
	"math"
	"time"

	"travelapp/internal/domain"
)

// RateCard is the listing rate structure the calculator prices against. It
// is captured from the listing at admission time, so later rate edits never
// reach a booking created before them.
type RateCard struct {
	NightlyRate float64
	WeeklyRate  *float64
	CleaningFee float64
}

func RateCardFor(l *domain.Listing) RateCard {
	return RateCard{
		NightlyRate: l.NightlyRate,
		WeeklyRate:  l.WeeklyRate,
		CleaningFee: l.CleaningFee,
	}
}

type PriceBreakdown struct {
	Nights      int
	NightlyRate float64
	Subtotal    float64
	Total       float64
}

// Quote computes the total price for [checkIn, checkOut). Pure function:
// rules apply in fixed order (weekly-rate override at 7+ nights, then the
// cleaning fee), every monetary step rounded to cents.
func Quote(rc RateCard, checkIn, checkOut time.Time) (PriceBreakdown, error) {
	nights := wholeNights(checkIn, checkOut)
	if nights <= 0 {
		return PriceBreakdown{}, ErrInvalidRange
	}

	rate := rc.NightlyRate
	if rc.WeeklyRate != nil && nights >= 7 {
		rate = *rc.WeeklyRate
	}

	subtotal := roundCents(float64(nights) * rate)
	total := roundCents(subtotal + rc.CleaningFee)

	return PriceBreakdown{
		Nights:      nights,
		NightlyRate: rate,
		Subtotal:    subtotal,
		Total:       total,
	}, nil
}

func wholeNights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// normalizeDate truncates an instant to its UTC calendar day; bookings work
// in whole days.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
