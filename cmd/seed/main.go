package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"travelapp/internal/config"
	"travelapp/internal/database"
	"travelapp/internal/domain"
	"travelapp/internal/modules/booking"
	"travelapp/internal/modules/listing"
	"travelapp/internal/modules/review"
	"travelapp/internal/pkg/clock"
	"travelapp/internal/pkg/keylock"
	"travelapp/internal/repository"

	"github.com/joho/godotenv"
)

var cities = [][2]string{
	{"New York", "USA"},
	{"Paris", "France"},
	{"Tokyo", "Japan"},
	{"London", "UK"},
	{"Barcelona", "Spain"},
	{"Dubai", "UAE"},
	{"Sydney", "Australia"},
	{"Rome", "Italy"},
	{"Bangkok", "Thailand"},
	{"Istanbul", "Turkey"},
}

var propertyTypes = []domain.PropertyType{
	domain.PropertyApartment,
	domain.PropertyHouse,
	domain.PropertyCondo,
	domain.PropertyCabin,
	domain.PropertyVilla,
}

var adjectives = []string{"Cozy", "Luxury", "Modern", "Charming", "Spacious", "Beautiful", "Elegant", "Stunning"}
var nouns = []string{"Studio", "Apartment", "Loft", "Villa", "House", "Suite", "Retreat"}

var amenityPool = []string{"wifi", "kitchen", "air_conditioning", "washer", "parking", "pool", "workspace"}

var comments = []string{
	"Great stay, would book again.",
	"Clean, quiet and exactly as described.",
	"Lovely place, slightly noisy street.",
	"Perfect location, friendly host.",
	"Spotless and comfortable.",
}

func main() {
	_ = godotenv.Load()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	cfg, err := config.LoadEngineConfig()
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Listing{},
		&domain.Booking{},
		&domain.Review{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM listings")

	ctx := context.Background()

	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	locks := keylock.New()
	index := booking.NewAvailabilityIndex(locks)

	listingService := listing.NewService(listingRepo)

	// All rows go through the services so admission validation is never
	// bypassed. Historical stays are driven through a backdated clock; every
	// transition rule still applies.
	now := time.Now().UTC()
	past := now.AddDate(0, -2, 0)
	backdated := booking.NewService(bookingRepo, listingRepo, index, clock.NewFixed(past), cfg)
	current := booking.NewService(bookingRepo, listingRepo, index, clock.NewSystem(), cfg)
	reviewService := review.NewService(reviewRepo, bookingRepo, listingRepo, locks, clock.NewSystem())

	// ================== LISTINGS ==================
	log.Println("Creating listings...")
	listings := make([]*domain.Listing, 0, 10)
	for i := 0; i < 10; i++ {
		city := cities[rng.Intn(len(cities))]
		title := fmt.Sprintf("%s %s in %s",
			adjectives[rng.Intn(len(adjectives))],
			nouns[rng.Intn(len(nouns))],
			city[0])

		req := listing.CreateListingRequest{
			HostID:       int64(1 + rng.Intn(5)),
			Title:        title,
			Description:  "Seeded sample listing",
			PropertyType: propertyTypes[rng.Intn(len(propertyTypes))],
			City:         city[0],
			Country:      city[1],
			Bedrooms:     1 + rng.Intn(4),
			Bathrooms:    1 + rng.Intn(3),
			MaxGuests:    2 + rng.Intn(6),
			Amenities:    pickAmenities(rng),
			NightlyRate:  float64(50 + rng.Intn(300)),
			CleaningFee:  float64(rng.Intn(60)),
		}
		if rng.Intn(2) == 0 {
			weekly := req.NightlyRate * 0.85
			req.WeeklyRate = &weekly
		}

		l, err := listingService.Create(ctx, req)
		if err != nil {
			log.Fatal("create listing:", err)
		}
		listings = append(listings, l)
	}
	log.Printf("Created %d listings", len(listings))

	// ================== HISTORICAL BOOKINGS + REVIEWS ==================
	log.Println("Creating completed stays and reviews...")
	reviewed := 0
	for _, l := range listings {
		stays := 1 + rng.Intn(3)
		for i := 0; i < stays; i++ {
			checkIn := past.AddDate(0, 0, 2+i*10)
			nights := 2 + rng.Intn(5)

			b, err := backdated.CreateBooking(ctx, booking.CreateBookingRequest{
				ListingID: l.ID,
				GuestID:   int64(100 + rng.Intn(20)),
				CheckIn:   checkIn,
				CheckOut:  checkIn.AddDate(0, 0, nights),
				Guests:    1 + rng.Intn(l.MaxGuests),
			})
			if err != nil {
				log.Fatal("create historical booking:", err)
			}

			if _, err := backdated.Transition(ctx, b.ID, domain.BookingConfirmed, ""); err != nil {
				log.Fatal("confirm booking:", err)
			}
			if _, err := current.Transition(ctx, b.ID, domain.BookingCompleted, ""); err != nil {
				log.Fatal("complete booking:", err)
			}

			rv, err := reviewService.SubmitReview(ctx, review.SubmitReviewRequest{
				BookingID: b.ID,
				Rating:    3 + rng.Intn(3),
				Comment:   comments[rng.Intn(len(comments))],
			})
			if err != nil {
				log.Fatal("submit review:", err)
			}
			reviewed++

			if rng.Intn(3) == 0 {
				if _, err := reviewService.AddHostResponse(ctx, rv.ID, "Thanks for staying with us!"); err != nil {
					log.Fatal("host response:", err)
				}
			}
		}
	}
	log.Printf("Created %d completed stays with reviews", reviewed)

	// ================== UPCOMING BOOKINGS ==================
	log.Println("Creating upcoming bookings...")
	upcoming := 0
	for _, l := range listings {
		count := 1 + rng.Intn(3)
		for i := 0; i < count; i++ {
			checkIn := now.AddDate(0, 0, 7+i*14)
			nights := 2 + rng.Intn(6)

			b, err := current.CreateBooking(ctx, booking.CreateBookingRequest{
				ListingID: l.ID,
				GuestID:   int64(100 + rng.Intn(20)),
				CheckIn:   checkIn,
				CheckOut:  checkIn.AddDate(0, 0, nights),
				Guests:    1 + rng.Intn(l.MaxGuests),
			})
			if err != nil {
				log.Fatal("create upcoming booking:", err)
			}
			upcoming++

			if rng.Intn(2) == 0 {
				if _, err := current.Transition(ctx, b.ID, domain.BookingConfirmed, ""); err != nil {
					log.Fatal("confirm upcoming booking:", err)
				}
			}
		}
	}
	log.Printf("Created %d upcoming bookings", upcoming)

	log.Println("Database seeding completed successfully!")
}

func pickAmenities(rng *rand.Rand) []string {
	n := 2 + rng.Intn(4)
	out := make([]string, 0, n)
	perm := rng.Perm(len(amenityPool))
	for i := 0; i < n; i++ {
		out = append(out, amenityPool[perm[i]])
	}
	return out
}
