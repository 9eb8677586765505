package middlewares

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	ctx.Next()
}

func MaintenanceMode(ctx *gin.Context) {
	mm := os.Getenv("MAINTENANCE_MODE")
	atoi, err := strconv.ParseBool(mm)
	if err == nil && atoi {
		err := errors.New("server is under maintenance")
		log.Println(err.Error())
		ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
		return
	}
	ctx.Next()
}
