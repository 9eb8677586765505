package common

import (
	"encoding/json"
	"fmt"
	"log"
	"netrix/src/config"
	"netrix/src/db"
	"netrix/src/lib"
	"netrix/src/models"
	"time"
)

// NotifyOperator mails the back-office address about a non-fatal lifecycle
// problem. Failures here are logged and dropped; notifications must never
// block or fail the read path.
func NotifyOperator(subject string, payload any) {
	to := config.OPERATOR_EMAIL
	if to == "" {
		return
	}
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		body = []byte(fmt.Sprintf("%+v", payload))
	}
	if err := lib.SendMail(&lib.SendMailInput{
		From:     config.SMTP_FROM,
		FromName: "noreply",
		To:       []string{to},
		Subject:  subject,
		Body:     string(body),
	}); err != nil {
		log.Printf("Could not send operator notification: %s\n", err.Error())
	}
}

// NotifyUpcomingExpiries emails the customers whose rentals just moved into
// the expiry window so they can renew in time.
func NotifyUpcomingExpiries(rentalIDs []uint) {
	if len(rentalIDs) == 0 {
		return
	}
	var rentals []models.Rental
	gdb := db.GetDb()
	if err := gdb.
		Model(&models.Rental{}).
		Where("id IN ?", rentalIDs).
		Preload("Customer").
		Preload("Account.Platform").
		Find(&rentals).
		Error; err != nil {
		log.Printf("Error loading rentals for expiry notices: %s\n", err.Error())
		return
	}
	for _, rental := range rentals {
		if rental.Customer == nil || rental.Customer.Email == "" || rental.EndsAt == nil {
			continue
		}
		platform := ""
		if rental.Account != nil {
			platform = rental.Account.Platform.Name
		}
		if err := lib.SendMail(&lib.SendMailInput{
			From:     config.SMTP_FROM,
			FromName: "noreply",
			To:       []string{rental.Customer.Email},
			Subject:  fmt.Sprintf("Your %s rental expires soon", platform),
			Body: fmt.Sprintf(`
				<p>Hi %s,</p>
				<p>Your %s rental ends on %s. Renew now to keep your access.</p>
			`, rental.Customer.Name, platform, rental.EndsAt.Format(time.RFC1123)),
			Html: true,
		}); err != nil {
			log.Printf("Could not send expiry notice for rental %d: %s\n", rental.ID, err.Error())
		}
	}
}
