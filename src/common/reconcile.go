package common

import (
	"context"
	"log"
	"netrix/src/config"
	"netrix/src/db"
	"netrix/src/lifecycle"
	"time"
)

var reconciler *lifecycle.Reconciler

// InitReconciler builds the shared reconciler from the configured windows.
// Called once at boot, after the windows have been validated.
func InitReconciler() *lifecycle.Reconciler {
	if reconciler != nil {
		return reconciler
	}
	r := lifecycle.NewReconciler(db.GetDb(), lifecycle.WindowsFromConfig())
	r.OnTransitions = func(report *lifecycle.Report) {
		InvalidateRentalList()
		BroadcastRentalsUpdated(report)
		go NotifyUpcomingExpiries(report.UpcomingIDs)
		if report.Failed > 0 {
			go NotifyOperator("Rental reconciliation finished with errors", report)
		}
	}
	reconciler = r
	return r
}

func GetReconciler() *lifecycle.Reconciler {
	return reconciler
}

// KickReconcile runs an opportunistic pass in the background. Used by the
// rental-list read path to self-heal between timer ticks; the single-flight
// guard inside the reconciler keeps concurrent kicks cheap. No-op before
// boot wires the reconciler up.
func KickReconcile() {
	if reconciler == nil {
		return
	}
	go reconciler.TryReconcileAll(context.Background())
}

// RunReconcilePass is the daily job body. The server-side procedures run
// first (they stay authoritative for the rental date math), then the Go
// pass fixes anything they missed and handles the account-side moves.
// Procedure failures are logged and the pass continues; the next tick
// retries.
func RunReconcilePass() {
	ctx := context.Background()
	gdb := db.GetDb()
	ref := time.Now().UTC()
	if err := lifecycle.AdvanceNearingExpiry(ctx, gdb, ref); err != nil {
		log.Printf("[reconcile] advance_rentals_nearing_expiry failed: %s\n", err.Error())
	}
	if err := lifecycle.AdvancePastExpiry(ctx, gdb, ref); err != nil {
		log.Printf("[reconcile] advance_rentals_past_expiry failed: %s\n", err.Error())
	}
	if reconciler != nil {
		reconciler.TryReconcileAll(ctx)
	}
}

// RunHoldSweep is the short-interval job body reverting abandoned checkout
// holds. Errors are logged only; the next tick retries.
func RunHoldSweep() {
	count, err := lifecycle.ExpireStaleHolds(context.Background(), db.GetDb(), time.Now().UTC(), config.HoldGrace())
	if err != nil {
		log.Printf("[holds] sweep failed: %s\n", err.Error())
		return
	}
	if count > 0 {
		log.Printf("[holds] reverted %d stale holds\n", count)
		InvalidateRentalList()
	}
}
