package lifecycle

import (
	"context"
	"netrix/src/models"
	"netrix/src/types"
	"time"

	"gorm.io/gorm"
)

// ExpireStaleHolds reverts accounts stuck in the in_process reservation
// state back to available once they have sat there longer than grace. The
// status guard in the WHERE clause is what makes this race-safe: a checkout
// that completed between scan and write already moved the row to rented and
// the update skips it.
func ExpireStaleHolds(ctx context.Context, db *gorm.DB, now time.Time, grace time.Duration) (int64, error) {
	cutoff := now.Add(-grace)
	res := db.WithContext(ctx).
		Model(&models.Account{}).
		Where("status = ? AND updated_at < ?", types.ACCOUNT_IN_PROCESS, cutoff).
		Update("status", types.ACCOUNT_AVAILABLE)
	return res.RowsAffected, res.Error
}
