package models

import (
	"netrix/src/types"
	"time"
)

// Rental assigns one account to one customer for a time window. EndsAt nil
// means indefinite. Description carries the customer's issue text while a
// warranty request is open. Rentals are never hard-deleted.
type Rental struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	CustomerID  uint               `json:"customer_id,omitempty"`
	AccountID   uint               `json:"account_id,omitempty"`
	StartsAt    time.Time          `json:"starts_at,omitempty"`
	EndsAt      *time.Time         `json:"ends_at,omitempty"`
	Status      types.RentalStatus `gorm:"default:'rented';index" json:"status,omitempty"`
	Description string             `json:"description,omitempty"`

	Customer *Customer `json:"customer,omitempty"`
	Account  *Account  `json:"account,omitempty"`

	types.Timestamps
}
