package main

import (
	"log"
	"net/http"
	"netrix/src/common"
	"netrix/src/db"
	"netrix/src/models"
	"netrix/src/types"
	"netrix/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func accountHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/platforms", func(ctx *gin.Context) {
			var platforms []models.Platform
			gdb := db.GetDb()
			if err := gdb.Find(&platforms).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": platforms, "count": len(platforms)})
		}).
		POST("/platforms", func(ctx *gin.Context) {
			var body types.CreatePlatformRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			platform := models.Platform{Name: body.Name, LogoURL: body.LogoURL}
			gdb := db.GetDb()
			if err := gdb.Create(&platform).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": platform})
		}).
		GET("/accounts", func(ctx *gin.Context) {
			var accounts []models.Account
			gdb := db.GetDb()
			q := gdb.Model(&models.Account{}).Preload("Platform")
			if status := ctx.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			if err := q.Find(&accounts).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": accounts, "count": len(accounts)})
		}).
		POST("/accounts", func(ctx *gin.Context) {
			var body types.CreateAccountRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			key, err := utils.SecretKey()
			if err != nil {
				log.Printf("Error reading secret key: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			enc, err := utils.EncryptMessage(key, body.Secret)
			if err != nil {
				log.Printf("Error encrypting account secret: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			account := models.Account{
				PlatformID: body.PlatformID,
				Login:      body.Login,
				Secret:     enc,
				Status:     types.ACCOUNT_AVAILABLE,
			}
			gdb := db.GetDb()
			if err := gdb.Create(&account).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": account})
		}).
		POST("/accounts/:id/release", func(ctx *gin.Context) {
			// operator finished cleaning up an expired account; guarded so
			// only under_review rows can be released
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			gdb := db.GetDb()
			var released bool
			err := gdb.Transaction(func(tx *gorm.DB) error {
				res := tx.
					Model(&models.Account{}).
					Where("id = ? AND status = ?", params.ID, types.ACCOUNT_UNDER_REVIEW).
					Update("status", types.ACCOUNT_AVAILABLE)
				if res.Error != nil {
					return res.Error
				}
				released = res.RowsAffected > 0
				return nil
			})
			if err != nil {
				log.Printf("Error releasing account %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !released {
				ctx.JSON(http.StatusConflict, gin.H{"error": "account is not under review"})
				return
			}
			common.InvalidateRentalList()
			ctx.Status(http.StatusOK)
		})
	return g
}
