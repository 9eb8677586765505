package lifecycle

import (
	"context"
	"log"
	"netrix/src/models"
	"netrix/src/types"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
)

// Report is what one reconciliation pass did.
type Report struct {
	Scanned        int    `json:"scanned"`
	Transitioned   int    `json:"transitioned"`
	Failed         int    `json:"failed"`
	Expired        int    `json:"expired"`
	UpcomingExpiry int    `json:"upcoming_expiry"`
	Rented         int    `json:"rented"`
	UpcomingIDs    []uint `json:"-"`
}

// Reconciler aligns stored rental statuses with time-derived ones. Rentals
// in warranty are never touched here; support resolves those by hand.
type Reconciler struct {
	db      *gorm.DB
	windows Windows
	running atomic.Bool

	// OnTransitions runs after a pass that persisted at least one change,
	// for cache invalidation and operator notices. Optional.
	OnTransitions func(*Report)
}

func NewReconciler(db *gorm.DB, w Windows) *Reconciler {
	return &Reconciler{db: db, windows: w}
}

// TryReconcileAll is the single-flight entry point used by timers and the
// opportunistic refresh on the rental-list read path. It reports false when
// a pass is already in flight and the tick was skipped.
func (r *Reconciler) TryReconcileAll(ctx context.Context) bool {
	if !r.running.CompareAndSwap(false, true) {
		log.Println("[reconcile] previous pass still running, skipping tick")
		return false
	}
	defer r.running.Store(false)
	if _, err := r.ReconcileAll(ctx); err != nil {
		log.Printf("[reconcile] pass failed: %s\n", err.Error())
	}
	return true
}

// ReconcileAll scans every rental outside warranty, derives the target
// status and persists mismatches. A single record's failure is logged and
// counted, never fatal to the rest of the batch. Re-running with no elapsed
// time issues zero writes.
func (r *Reconciler) ReconcileAll(ctx context.Context) (*Report, error) {
	now := time.Now().UTC()
	report := &Report{}

	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("status <> ?", types.RENTAL_WARRANTY).
		Find(&rentals).
		Error
	if err != nil {
		log.Printf("[reconcile] error listing rentals: %s\n", err.Error())
		return nil, err
	}

	report.Scanned = len(rentals)
	for _, rental := range rentals {
		if rental.EndsAt != nil && !EndDateUsable(rental.StartsAt, rental.EndsAt) {
			log.Printf("[reconcile] rental %d has end %s before start %s, treating as indefinite\n",
				rental.ID, rental.EndsAt.Format(time.RFC3339), rental.StartsAt.Format(time.RFC3339))
		}
		derived := DeriveStatus(now, rental.StartsAt, rental.EndsAt, false, r.windows)
		if derived == rental.Status {
			continue
		}
		applied, err := r.transition(ctx, &rental, derived)
		if err != nil {
			log.Printf("[reconcile] error transitioning rental %d %s->%s: %s\n",
				rental.ID, rental.Status, derived, err.Error())
			report.Failed++
			continue
		}
		if !applied {
			// someone else already moved it; not our transition to report
			continue
		}
		report.Transitioned++
		switch derived {
		case types.RENTAL_EXPIRED:
			report.Expired++
		case types.RENTAL_UPCOMING_EXPIRY:
			report.UpcomingExpiry++
			report.UpcomingIDs = append(report.UpcomingIDs, rental.ID)
		case types.RENTAL_RENTED:
			report.Rented++
		}
	}

	if report.Transitioned > 0 && r.OnTransitions != nil {
		r.OnTransitions(report)
	}
	return report, nil
}

// transition persists one status change and reports whether the write
// applied. The rental update is guarded on the status we read so an
// overlapping pass can only apply it once; a lost race is a no-op, not an
// error. A move into expired flips a still-rented account to under_review
// in the same transaction; moves into upcoming_expiry never touch the
// account.
func (r *Reconciler) transition(ctx context.Context, rental *models.Rental, derived types.RentalStatus) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Rental{}).
			Where("id = ? AND status = ?", rental.ID, rental.Status).
			Update("status", derived)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true
		if derived == types.RENTAL_EXPIRED {
			if err := tx.
				Model(&models.Account{}).
				Where("id = ? AND status = ?", rental.AccountID, types.ACCOUNT_RENTED).
				Update("status", types.ACCOUNT_UNDER_REVIEW).
				Error; err != nil {
				return err
			}
		}
		return nil
	})
	return applied, err
}
