package models

import (
	"netrix/src/types"

	"github.com/google/uuid"
)

type Customer struct {
	ID    uint      `gorm:"primarykey" json:"id"`
	UUID  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid()" json:"uuid"`
	Name  string    `json:"name,omitempty"`
	Email string    `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`

	Rentals []Rental `json:"rentals,omitempty"`

	types.Timestamps
}
