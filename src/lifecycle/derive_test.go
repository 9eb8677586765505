package lifecycle

import (
	"netrix/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var defaultWindows = Windows{
	ExpiredGrace: 24 * time.Hour,
	Lookahead:    7 * 24 * time.Hour,
}

func ptr(t time.Time) *time.Time { return &t }

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, -1, 0)

	tests := []struct {
		name     string
		endsAt   *time.Time
		warranty bool
		want     types.RentalStatus
	}{
		{"end three days out is upcoming", ptr(now.AddDate(0, 0, 3)), false, types.RENTAL_UPCOMING_EXPIRY},
		{"end two days ago is expired", ptr(now.AddDate(0, 0, -2)), false, types.RENTAL_EXPIRED},
		{"open warranty overrides expired", ptr(now.AddDate(0, 0, -30)), true, types.RENTAL_WARRANTY},
		{"open warranty overrides indefinite", nil, true, types.RENTAL_WARRANTY},
		{"no end date is indefinite", nil, false, types.RENTAL_RENTED},
		{"end far in the future is rented", ptr(now.AddDate(0, 2, 0)), false, types.RENTAL_RENTED},
		{"end exactly now is upcoming", ptr(now), false, types.RENTAL_UPCOMING_EXPIRY},
		{"past end but inside grace is rented", ptr(now.Add(-12 * time.Hour)), false, types.RENTAL_RENTED},
		{"end exactly at grace boundary is expired", ptr(now.Add(-24 * time.Hour)), false, types.RENTAL_EXPIRED},
		{"end exactly at lookahead boundary is upcoming", ptr(now.Add(7 * 24 * time.Hour)), false, types.RENTAL_UPCOMING_EXPIRY},
		{"end before start is treated as indefinite", ptr(start.AddDate(0, 0, -1)), false, types.RENTAL_RENTED},
		{"zero end date is treated as indefinite", ptr(time.Time{}), false, types.RENTAL_RENTED},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(now, start, tt.endsAt, tt.warranty, defaultWindows)
			assert.Equal(t, tt.want, got)
		})
	}
}

// DeriveStatus is total: any combination of inputs lands on exactly one of
// the four statuses.
func TestDeriveStatusTotal(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	valid := map[types.RentalStatus]bool{
		types.RENTAL_RENTED:          true,
		types.RENTAL_UPCOMING_EXPIRY: true,
		types.RENTAL_EXPIRED:         true,
		types.RENTAL_WARRANTY:        true,
	}

	offsets := []time.Duration{
		-90 * 24 * time.Hour, -8 * 24 * time.Hour, -25 * time.Hour, -23 * time.Hour,
		-time.Second, 0, time.Second, 3 * 24 * time.Hour, 7 * 24 * time.Hour, 400 * 24 * time.Hour,
	}
	windows := []Windows{
		{},
		defaultWindows,
		{ExpiredGrace: time.Hour, Lookahead: time.Hour},
	}
	starts := []time.Time{{}, now.AddDate(0, -1, 0), now.AddDate(1, 0, 0)}

	for _, w := range windows {
		for _, start := range starts {
			for _, warranty := range []bool{true, false} {
				assert.True(t, valid[DeriveStatus(now, start, nil, warranty, w)])
				for _, off := range offsets {
					got := DeriveStatus(now, start, ptr(now.Add(off)), warranty, w)
					assert.True(t, valid[got], "offset=%s warranty=%v got=%s", off, warranty, got)
				}
			}
		}
	}
}

// The expired and upcoming windows never both claim the same instant when
// the configured windows pass validation.
func TestDeriveStatusWindowsDisjoint(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, -1, 0)

	for off := -10 * 24; off <= 10*24; off++ {
		end := now.Add(time.Duration(off) * time.Hour)
		got := DeriveStatus(now, start, &end, false, defaultWindows)
		switch {
		case now.Sub(end) >= defaultWindows.ExpiredGrace:
			assert.Equal(t, types.RENTAL_EXPIRED, got, "offset %dh", off)
		case !end.Before(now) && end.Sub(now) <= defaultWindows.Lookahead:
			assert.Equal(t, types.RENTAL_UPCOMING_EXPIRY, got, "offset %dh", off)
		default:
			assert.Equal(t, types.RENTAL_RENTED, got, "offset %dh", off)
		}
	}
}
