package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"netrix/src/common"
	"netrix/src/config"
	"netrix/src/db"
	"netrix/src/lib"
	"netrix/src/models"
	"netrix/src/types"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func rentalHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rentals", func(ctx *gin.Context) {
			// self-heal statuses without blocking the read; staleness up
			// to one timer period is acceptable
			common.KickReconcile()

			if rd := lib.GetRedisClient(); rd != nil {
				cached, err := rd.Get(context.Background(), common.RentalListCacheKey).Result()
				if err == nil && cached != "" {
					var data []models.Rental
					if err := json.Unmarshal([]byte(cached), &data); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data), "cached": true})
						return
					}
				} else if err != nil && err != redis.Nil {
					log.Printf("[redis] Error reading %s: %s\n", common.RentalListCacheKey, err.Error())
				}
			}

			var rentals []models.Rental
			gdb := db.GetDb()
			if err := gdb.
				Model(&models.Rental{}).
				Preload("Customer").
				Preload("Account").
				Order("id asc").
				Find(&rentals).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			go func() {
				rd := lib.GetRedisClient()
				if rd == nil {
					return
				}
				raw, err := json.Marshal(rentals)
				if err != nil {
					return
				}
				if err := rd.SetEx(context.Background(), common.RentalListCacheKey, raw, config.RentalCacheTTL()).Err(); err != nil {
					log.Printf("[redis] Error caching %s: %s\n", common.RentalListCacheKey, err.Error())
				}
			}()

			ctx.JSON(http.StatusOK, gin.H{"data": rentals, "count": len(rentals)})
		}).
		GET("/rentals/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var rental models.Rental
			gdb := db.GetDb()
			if err := gdb.
				Model(&models.Rental{}).
				Where(&models.Rental{ID: params.ID}).
				Preload("Customer").
				Preload("Account").
				Preload("Account.Platform").
				First(&rental).
				Error; err != nil {
				err := errors.New("rental not found")
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rental})
		})
	return g
}
