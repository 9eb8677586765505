package common

import (
	"context"
	"errors"
	"log"
	"netrix/src/config"
	"netrix/src/db"
	"netrix/src/models"
	"netrix/src/types"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNoStock        = errors.New("no account available for this platform")
	ErrHoldLost       = errors.New("account hold was lost before payment settled")
	ErrUnknownPayment = errors.New("no payment matches the provider reference")
)

// ClaimAccount reserves one available account for the platform inside tx.
// The row is locked for the claim and the update is still guarded on
// status, so two concurrent checkouts can never hold the same account.
func ClaimAccount(tx *gorm.DB, platformID uint) (*models.Account, error) {
	var account models.Account
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("platform_id = ? AND status = ?", platformID, types.ACCOUNT_AVAILABLE).
		First(&account).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoStock
		}
		return nil, err
	}
	res := tx.
		Model(&models.Account{}).
		Where("id = ? AND status = ?", account.ID, types.ACCOUNT_AVAILABLE).
		Update("status", types.ACCOUNT_IN_PROCESS)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNoStock
	}
	account.Status = types.ACCOUNT_IN_PROCESS
	return &account, nil
}

// SettlePayment applies a provider-confirmed payment status. Paid completes
// the checkout: the held account becomes rented and the rental record is
// created. Canceled releases the hold. Pending is a no-op. Every account
// move is guarded on the status it leaves so the hold expirer and a
// concurrent settlement cannot clobber each other.
func SettlePayment(ctx context.Context, reference string, status types.PaymentStatus) error {
	gdb := db.GetDb()
	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.
			Where(&models.Payment{Reference: reference}).
			First(&payment).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownPayment
			}
			return err
		}
		if payment.Status != types.PAYMENT_PENDING {
			// already settled, nothing to repeat
			return nil
		}

		switch status {
		case types.PAYMENT_PAID:
			if err := completeCheckout(tx, &payment); err != nil {
				return err
			}
		case types.PAYMENT_CANCELED:
			if err := tx.
				Model(&models.Payment{}).
				Where("id = ? AND status = ?", payment.ID, types.PAYMENT_PENDING).
				Update("status", types.PAYMENT_CANCELED).
				Error; err != nil {
				return err
			}
			// the hold may no longer be ours: if it timed out and another
			// checkout re-claimed the account, releasing it here would free
			// a live hold. Only release when no other pending payment has a
			// claim on the account. A hold that already timed out affects
			// zero rows, which is fine.
			var claims int64
			if err := tx.
				Model(&models.Payment{}).
				Where("account_id = ? AND status = ? AND id <> ?", payment.AccountID, types.PAYMENT_PENDING, payment.ID).
				Count(&claims).
				Error; err != nil {
				return err
			}
			if claims == 0 {
				if err := tx.
					Model(&models.Account{}).
					Where("id = ? AND status = ?", payment.AccountID, types.ACCOUNT_IN_PROCESS).
					Update("status", types.ACCOUNT_AVAILABLE).
					Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	InvalidateRentalList()
	return nil
}

func completeCheckout(tx *gorm.DB, payment *models.Payment) error {
	res := tx.
		Model(&models.Account{}).
		Where("id = ? AND status = ?", payment.AccountID, types.ACCOUNT_IN_PROCESS).
		Update("status", types.ACCOUNT_RENTED)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// the hold expirer beat us to it; reclaim the account if it is
		// still free, otherwise the operator has to sort it out
		res = tx.
			Model(&models.Account{}).
			Where("id = ? AND status = ?", payment.AccountID, types.ACCOUNT_AVAILABLE).
			Update("status", types.ACCOUNT_RENTED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("Payment %s settled but account %d is gone\n", payment.Reference, payment.AccountID)
			return ErrHoldLost
		}
	}

	if err := tx.
		Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, types.PAYMENT_PENDING).
		Update("status", types.PAYMENT_PAID).
		Error; err != nil {
		return err
	}

	termDays := payment.TermDays
	if termDays == 0 {
		termDays = uint(config.RentalTermDays())
	}
	now := time.Now().UTC()
	ends := now.AddDate(0, 0, int(termDays))
	rental := models.Rental{
		CustomerID: payment.CustomerID,
		AccountID:  payment.AccountID,
		StartsAt:   now,
		EndsAt:     &ends,
		Status:     types.RENTAL_RENTED,
	}
	if err := tx.Create(&rental).Error; err != nil {
		return err
	}
	return nil
}
