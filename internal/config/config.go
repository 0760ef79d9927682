package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"travelapp/internal/domain"
)

const (
	defaultDatabaseURL   = "travel.db"
	defaultBookingStatus = "pending"
	defaultAllowInstant  = "true"
)

// EngineConfig carries booking-engine policy that is deliberately not
// hard-coded: whether new bookings start pending or confirmed, and whether
// callers may request instant (confirmed) admission at all.
type EngineConfig struct {
	DatabaseURL          string
	DefaultBookingStatus domain.BookingStatus
	AllowInstantBooking  bool
}

func LoadEngineConfig() (*EngineConfig, error) {
	cfg := &EngineConfig{}

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))

	status := strings.ToLower(strings.TrimSpace(getEnv("BOOKING_DEFAULT_STATUS", defaultBookingStatus)))
	switch domain.BookingStatus(status) {
	case domain.BookingPending, domain.BookingConfirmed:
		cfg.DefaultBookingStatus = domain.BookingStatus(status)
	default:
		return nil, fmt.Errorf("BOOKING_DEFAULT_STATUS: must be pending or confirmed, got %q", status)
	}

	allow, err := parseBoolEnv("BOOKING_ALLOW_INSTANT", defaultAllowInstant)
	if err != nil {
		return nil, err
	}
	cfg.AllowInstantBooking = allow

	if cfg.DefaultBookingStatus == domain.BookingConfirmed && !cfg.AllowInstantBooking {
		return nil, fmt.Errorf("BOOKING_DEFAULT_STATUS=confirmed requires BOOKING_ALLOW_INSTANT=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolEnv(key, fallback string) (bool, error) {
	raw := strings.TrimSpace(getEnv(key, fallback))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return v, nil
}
