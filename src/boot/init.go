package boot

import (
	"log"
	"netrix/src/common"
	"netrix/src/config"
	"netrix/src/db"
	"netrix/src/lib"
	"netrix/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Platform{},
		&models.Account{},
		&models.Customer{},
		&models.Rental{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler validates the lifecycle windows, wires the shared
// reconciler and registers the two periodic jobs: the daily reconcile pass
// and the short hold sweep. The jobs touch disjoint status transitions and
// may overlap each other freely; each one is singleton against itself.
func InitScheduler() {
	if err := config.ValidateWindows(config.ExpiredGraceDays(), config.LookaheadDays()); err != nil {
		log.Fatalf("invalid lifecycle windows: %s", err.Error())
	}

	common.InitReconciler()

	if _, err := lib.CreateIntervalJob("reconcile-rentals", config.ReconcileInterval(), common.RunReconcilePass); err != nil {
		log.Fatalf("error scheduling reconcile job: %s", err.Error())
	}
	if _, err := lib.CreateIntervalJob("expire-stale-holds", config.HoldSweepInterval(), common.RunHoldSweep); err != nil {
		log.Fatalf("error scheduling hold sweep: %s", err.Error())
	}

	if err := lib.StartScheduler(); err != nil {
		log.Fatalf("error starting scheduler: %s", err.Error())
	}
}

func StopScheduler() {
	if err := lib.StopScheduler(); err != nil {
		log.Printf("Error stopping scheduler: %s\n", err.Error())
	}
}
