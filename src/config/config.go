package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

var (
	API_ENV        = os.Getenv("API_ENV")
	API_SECRET     = os.Getenv("API_SECRET")
	SMTP_FROM      = os.Getenv("SMTP_FROM")
	OPERATOR_EMAIL = os.Getenv("OPERATOR_EMAIL")
)

// Lifecycle window defaults. All of them are env-tunable; the windows are
// validated once at boot via ValidateWindows.
const (
	DEFAULT_EXPIRED_GRACE_DAYS  = 1
	DEFAULT_LOOKAHEAD_DAYS      = 7
	DEFAULT_HOLD_GRACE_SECONDS  = 60
	DEFAULT_HOLD_SWEEP_SECONDS  = 15
	DEFAULT_RECONCILE_HOURS     = 24
	DEFAULT_RENTAL_TERM_DAYS    = 30
	DEFAULT_RENTAL_CACHE_TTLSEC = 60
)

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	atoi, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return atoi
}

func ExpiredGraceDays() int { return envInt("EXPIRED_GRACE_DAYS", DEFAULT_EXPIRED_GRACE_DAYS) }
func LookaheadDays() int    { return envInt("LOOKAHEAD_DAYS", DEFAULT_LOOKAHEAD_DAYS) }
func RentalTermDays() int   { return envInt("RENTAL_TERM_DAYS", DEFAULT_RENTAL_TERM_DAYS) }

func HoldGrace() time.Duration {
	return time.Duration(envInt("HOLD_GRACE_SECONDS", DEFAULT_HOLD_GRACE_SECONDS)) * time.Second
}

func HoldSweepInterval() time.Duration {
	return time.Duration(envInt("HOLD_SWEEP_SECONDS", DEFAULT_HOLD_SWEEP_SECONDS)) * time.Second
}

func ReconcileInterval() time.Duration {
	return time.Duration(envInt("RECONCILE_HOURS", DEFAULT_RECONCILE_HOURS)) * time.Hour
}

func RentalCacheTTL() time.Duration {
	return time.Duration(envInt("RENTAL_CACHE_TTL_SECONDS", DEFAULT_RENTAL_CACHE_TTLSEC)) * time.Second
}

// ValidateWindows rejects configurations where the expired and
// upcoming-expiry windows could overlap. The grace period must be positive
// and must not exceed the lookahead window.
func ValidateWindows(graceDays, lookaheadDays int) error {
	if graceDays < 0 {
		return fmt.Errorf("expired grace must not be negative, got %d", graceDays)
	}
	if lookaheadDays < 0 {
		return fmt.Errorf("lookahead must not be negative, got %d", lookaheadDays)
	}
	if graceDays > lookaheadDays {
		return fmt.Errorf("expired grace (%dd) must not exceed lookahead (%dd)", graceDays, lookaheadDays)
	}
	return nil
}
