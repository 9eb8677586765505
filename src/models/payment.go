package models

import "netrix/src/types"

// Payment is created pending when a checkout starts and settled by the
// provider webhook. Reference is the value echoed back in the provider's
// event metadata; it is how the webhook finds the record.
type Payment struct {
	ID         uint                `gorm:"primarykey" json:"id"`
	CustomerID uint                `json:"customer_id,omitempty"`
	AccountID  uint                `json:"account_id,omitempty"`
	Reference  string              `gorm:"uniqueIndex" json:"reference,omitempty"`
	Amount     float32             `json:"amount,omitempty"`
	Currency   string              `json:"currency,omitempty"`
	TermDays   uint                `json:"term_days,omitempty"`
	Status     types.PaymentStatus `gorm:"default:'pending';index" json:"status,omitempty"`

	Customer *Customer `json:"customer,omitempty"`
	Account  *Account  `json:"account,omitempty"`

	types.Timestamps
}
