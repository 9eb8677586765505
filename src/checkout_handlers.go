package main

import (
	"errors"
	"log"
	"net/http"
	"netrix/src/common"
	"netrix/src/config"
	"netrix/src/db"
	"netrix/src/models"
	"netrix/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// checkoutHandlers begins a rental purchase: one available account is put
// on a provisional hold and a pending payment is created. The hold either
// completes through the payment webhook or times out through the sweep.
func checkoutHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/checkout", func(ctx *gin.Context) {
			var body types.CreateCheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			termDays := body.TermDays
			if termDays == 0 {
				termDays = uint(config.RentalTermDays())
			}

			var payment models.Payment
			gdb := db.GetDb()
			err := gdb.Transaction(func(tx *gorm.DB) error {
				account, err := common.ClaimAccount(tx, body.PlatformID)
				if err != nil {
					return err
				}

				customer := models.Customer{
					Name:  body.Name,
					Email: body.Email,
					Phone: body.Phone,
				}
				if err := tx.
					Where(&models.Customer{Email: body.Email}).
					FirstOrCreate(&customer).
					Error; err != nil {
					return err
				}

				payment = models.Payment{
					CustomerID: customer.ID,
					AccountID:  account.ID,
					Reference:  uuid.NewString(),
					TermDays:   termDays,
					Status:     types.PAYMENT_PENDING,
				}
				if err := tx.Create(&payment).Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				if errors.Is(err, common.ErrNoStock) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error starting checkout: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			common.InvalidateRentalList()
			ctx.JSON(http.StatusCreated, gin.H{
				"payment_id": payment.ID,
				"reference":  payment.Reference,
			})
		})
	return g
}
