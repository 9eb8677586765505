package lifecycle

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// The two server-side batch procedures predate this service and stay
// authoritative for the rental-side date math; the Go reconciler runs after
// them as a freshness layer and is the only writer of the account-side
// under_review move. Both are invoked as black boxes with a reference date.

func AdvanceNearingExpiry(ctx context.Context, db *gorm.DB, ref time.Time) error {
	return db.WithContext(ctx).Exec("SELECT advance_rentals_nearing_expiry(?)", ref).Error
}

func AdvancePastExpiry(ctx context.Context, db *gorm.DB, ref time.Time) error {
	return db.WithContext(ctx).Exec("SELECT advance_rentals_past_expiry(?)", ref).Error
}
