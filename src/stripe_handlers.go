package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"netrix/src/common"
	"netrix/src/types"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/tidwall/gjson"
)

// mapProviderStatus folds the provider's event vocabulary into the internal
// payment statuses. Unknown events map to pending, which settles nothing.
func mapProviderStatus(eventType string) types.PaymentStatus {
	switch eventType {
	case "checkout.session.completed", "payment_intent.succeeded":
		return types.PAYMENT_PAID
	case "checkout.session.expired", "payment_intent.canceled", "payment_intent.payment_failed":
		return types.PAYMENT_CANCELED
	default:
		return types.PAYMENT_PENDING
	}
}

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		// signature verification is not optional; unverified events are
		// rejected, never processed
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)

		status := mapProviderStatus(string(event.Type))
		if status == types.PAYMENT_PENDING {
			ctx.Status(http.StatusOK)
			return
		}

		reference := gjson.GetBytes(event.Data.Raw, "metadata.reference").String()
		if reference == "" {
			log.Printf("[StripeEvent] %s carried no payment reference, ignoring\n", event.Type)
			ctx.Status(http.StatusOK)
			return
		}

		// acknowledge before settling; the provider retries on its own if
		// we ever lose one mid-flight
		ctx.Status(http.StatusOK)
		go func() {
			if err := common.SettlePayment(context.Background(), reference, status); err != nil {
				log.Printf("Error settling payment %s as %s: %s\n", reference, status, err.Error())
			}
		}()
	})
	return apiv1
}
