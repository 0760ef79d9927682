package booking

import (
	"sort"
	"sync"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/pkg/keylock"
)

type span struct {
	bookingID int64
	start     time.Time
	end       time.Time
}

// AvailabilityIndex keeps, per listing, the date ranges of pending and
// confirmed bookings, sorted by check-in. Because admitted ranges never
// overlap, the slice is sorted by end as well, which lets Conflicts probe
// with a single binary search instead of scanning every booking.
//
// Do serializes all mutating work for one listing; different listings never
// contend.
type AvailabilityIndex struct {
	locks *keylock.KeyLock

	mu        sync.RWMutex
	byListing map[int64][]span
}

func NewAvailabilityIndex(locks *keylock.KeyLock) *AvailabilityIndex {
	return &AvailabilityIndex{
		locks:     locks,
		byListing: make(map[int64][]span),
	}
}

// Do runs fn holding the listing's exclusive lock. Every check-then-mutate
// sequence (admission, transition) must run inside it.
func (ix *AvailabilityIndex) Do(listingID int64, fn func() error) error {
	return ix.locks.Do(listingID, fn)
}

// Conflicts reports whether [start, end) overlaps any indexed range of the
// listing, ignoring excludeBookingID (0 to exclude nothing). Half-open
// overlap: a < d && c < b.
func (ix *AvailabilityIndex) Conflicts(listingID int64, start, end time.Time, excludeBookingID int64) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	spans := ix.byListing[listingID]
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].end.After(start)
	})
	for ; i < len(spans) && spans[i].start.Before(end); i++ {
		if spans[i].bookingID != excludeBookingID {
			return true
		}
	}
	return false
}

// Insert adds a booking's range, keeping the slice ordered by check-in.
func (ix *AvailabilityIndex) Insert(listingID, bookingID int64, start, end time.Time) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	spans := ix.byListing[listingID]
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].start.After(start)
	})
	spans = append(spans, span{})
	copy(spans[i+1:], spans[i:])
	spans[i] = span{bookingID: bookingID, start: start, end: end}
	ix.byListing[listingID] = spans
}

// Remove drops a booking's range once it goes terminal. Removing an absent
// booking is a no-op.
func (ix *AvailabilityIndex) Remove(listingID, bookingID int64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	spans := ix.byListing[listingID]
	for i, s := range spans {
		if s.bookingID == bookingID {
			ix.byListing[listingID] = append(spans[:i], spans[i+1:]...)
			return
		}
	}
}

// Rebuild replaces the listing's entries from its persisted non-terminal
// bookings, used at warm-up and after bulk seeding.
func (ix *AvailabilityIndex) Rebuild(listingID int64, bookings []domain.Booking) {
	spans := make([]span, 0, len(bookings))
	for _, b := range bookings {
		if !b.Status.Blocking() {
			continue
		}
		spans = append(spans, span{bookingID: b.ID, start: b.CheckIn, end: b.CheckOut})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if len(spans) == 0 {
		delete(ix.byListing, listingID)
		return
	}
	ix.byListing[listingID] = spans
}

// Len reports how many ranges are indexed for the listing.
func (ix *AvailabilityIndex) Len(listingID int64) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.byListing[listingID])
}
