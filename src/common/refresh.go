package common

import (
	"context"
	"log"
	"netrix/src/lib"
	"netrix/src/lifecycle"
)

// The list cache is a freshness optimization, never a source of truth:
// every persisted transition drops the key and the next read re-derives.
const RentalListCacheKey = "rentals:list"

func InvalidateRentalList() {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), RentalListCacheKey).Err(); err != nil {
		log.Printf("[redis] Error invalidating %s: %s\n", RentalListCacheKey, err.Error())
	}
}

// BroadcastRentalsUpdated tells dashboard clients to refetch. Delivery is
// best effort.
func BroadcastRentalsUpdated(report *lifecycle.Report) {
	pc := lib.GetPusherClient()
	if err := pc.Trigger("rentals", "rentals-updated", report); err != nil {
		log.Printf("[pusher] Error broadcasting rentals-updated: %s\n", err.Error())
	}
}
