package main

import (
	"errors"
	"log"
	"net/http"
	"netrix/src/common"
	"netrix/src/config"
	"netrix/src/db"
	"netrix/src/lifecycle"
	"netrix/src/models"
	"netrix/src/types"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// warrantyHandlers is the manual branch of the rental lifecycle. Opening a
// warranty parks the rental outside the reconciler's reach; only the
// resolve endpoint brings it back.
func warrantyHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/rentals/:id/warranty", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.OpenWarrantyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			gdb := db.GetDb()
			var opened bool
			err := gdb.Transaction(func(tx *gorm.DB) error {
				res := tx.
					Model(&models.Rental{}).
					Where("id = ? AND status <> ?", params.ID, types.RENTAL_WARRANTY).
					Updates(map[string]any{
						"status":      types.RENTAL_WARRANTY,
						"description": body.Issue,
					})
				if res.Error != nil {
					return res.Error
				}
				opened = res.RowsAffected > 0
				return nil
			})
			if err != nil {
				log.Printf("Error opening warranty for rental %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !opened {
				ctx.JSON(http.StatusConflict, gin.H{"error": "rental not found or warranty already open"})
				return
			}
			common.InvalidateRentalList()
			ctx.Status(http.StatusOK)
		}).
		POST("/rentals/:id/warranty/resolve", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.ResolveWarrantyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			var err error
			switch body.Action {
			case "extend":
				err = resolveWarrantyExtend(params.ID, body.EndsAt)
			case "replace":
				err = resolveWarrantyReplace(params.ID, body.AccountID)
			}
			if err != nil {
				log.Printf("Error resolving warranty for rental %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			common.InvalidateRentalList()
			ctx.Status(http.StatusOK)
		})
	return g
}

// resolveWarrantyExtend keeps the same account and gives the rental a new
// end date; the stored status is re-derived from the new window rather than
// blindly reset.
func resolveWarrantyExtend(rentalID uint, endsAt *string) error {
	if endsAt == nil {
		return errors.New("extend requires ends_at")
	}
	newEnd, err := time.Parse(config.TIME_PARSE_FORMAT, *endsAt)
	if err != nil {
		return err
	}

	gdb := db.GetDb()
	return gdb.Transaction(func(tx *gorm.DB) error {
		var rental models.Rental
		if err := tx.
			Where("id = ? AND status = ?", rentalID, types.RENTAL_WARRANTY).
			First(&rental).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("no open warranty for this rental")
			}
			return err
		}
		status := lifecycle.DeriveStatus(time.Now().UTC(), rental.StartsAt, &newEnd, false, lifecycle.WindowsFromConfig())
		return tx.
			Model(&models.Rental{}).
			Where("id = ? AND status = ?", rentalID, types.RENTAL_WARRANTY).
			Updates(map[string]any{
				"ends_at": newEnd,
				"status":  status,
			}).
			Error
	})
}

// resolveWarrantyReplace swaps in a fresh account. The old one goes to
// under_review for cleanup; accountID picks a specific replacement,
// otherwise any available account on the same platform is claimed.
func resolveWarrantyReplace(rentalID uint, accountID *uint) error {
	gdb := db.GetDb()
	return gdb.Transaction(func(tx *gorm.DB) error {
		var rental models.Rental
		if err := tx.
			Where("id = ? AND status = ?", rentalID, types.RENTAL_WARRANTY).
			Preload("Account").
			First(&rental).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("no open warranty for this rental")
			}
			return err
		}

		var replacement models.Account
		q := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if accountID != nil {
			q = q.Where("id = ? AND status = ?", *accountID, types.ACCOUNT_AVAILABLE)
		} else {
			platformID := uint(0)
			if rental.Account != nil {
				platformID = rental.Account.PlatformID
			}
			q = q.Where("platform_id = ? AND status = ?", platformID, types.ACCOUNT_AVAILABLE)
		}
		if err := q.First(&replacement).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNoStock
			}
			return err
		}

		res := tx.
			Model(&models.Account{}).
			Where("id = ? AND status = ?", replacement.ID, types.ACCOUNT_AVAILABLE).
			Update("status", types.ACCOUNT_RENTED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return common.ErrNoStock
		}

		if err := tx.
			Model(&models.Account{}).
			Where("id = ? AND status = ?", rental.AccountID, types.ACCOUNT_RENTED).
			Update("status", types.ACCOUNT_UNDER_REVIEW).
			Error; err != nil {
			return err
		}

		return tx.
			Model(&models.Rental{}).
			Where("id = ? AND status = ?", rentalID, types.RENTAL_WARRANTY).
			Updates(map[string]any{
				"account_id": replacement.ID,
				"status":     types.RENTAL_RENTED,
			}).
			Error
	})
}
