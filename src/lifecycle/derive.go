package lifecycle

import (
	"netrix/src/config"
	"netrix/src/types"
	"time"
)

// Windows holds the two date thresholds the deriver compares against.
type Windows struct {
	ExpiredGrace time.Duration
	Lookahead    time.Duration
}

func WindowsFromConfig() Windows {
	return Windows{
		ExpiredGrace: time.Duration(config.ExpiredGraceDays()) * 24 * time.Hour,
		Lookahead:    time.Duration(config.LookaheadDays()) * 24 * time.Hour,
	}
}

// DeriveStatus maps a rental's time window to its status. An open warranty
// overrides everything else. A nil end date means indefinite, which is
// always plain rented; so is a window the store recorded backwards (end
// before start). Callers should treat that case as a data-quality signal
// (see EndDateUsable) but the deriver itself never fails.
func DeriveStatus(now time.Time, startsAt time.Time, endsAt *time.Time, openWarranty bool, w Windows) types.RentalStatus {
	if openWarranty {
		return types.RENTAL_WARRANTY
	}
	if !EndDateUsable(startsAt, endsAt) {
		return types.RENTAL_RENTED
	}
	end := *endsAt
	if now.Sub(end) >= w.ExpiredGrace {
		return types.RENTAL_EXPIRED
	}
	if !end.Before(now) && end.Sub(now) <= w.Lookahead {
		return types.RENTAL_UPCOMING_EXPIRY
	}
	return types.RENTAL_RENTED
}

// EndDateUsable reports whether the end date can participate in date
// arithmetic. Missing or zero dates mean an indefinite rental; an end date
// before the start is a recording error and must not expire anyone.
func EndDateUsable(startsAt time.Time, endsAt *time.Time) bool {
	if endsAt == nil || endsAt.IsZero() {
		return false
	}
	if !startsAt.IsZero() && endsAt.Before(startsAt) {
		return false
	}
	return true
}
