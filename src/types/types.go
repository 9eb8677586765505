package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type Environment string

const (
	Local      Environment = "local"
	Production Environment = "production"
)

// RentalStatus follows wall-clock time except for warranty, which is a
// manual support override and only leaves through the warranty endpoints.
type RentalStatus string

const (
	RENTAL_RENTED          RentalStatus = "rented"
	RENTAL_UPCOMING_EXPIRY RentalStatus = "upcoming_expiry"
	RENTAL_EXPIRED         RentalStatus = "expired"
	RENTAL_WARRANTY        RentalStatus = "warranty"
)

// AccountStatus state machine:
// available -> in_process -> {rented | available (hold timed out)}
// rented -> under_review -> available
type AccountStatus string

const (
	ACCOUNT_AVAILABLE    AccountStatus = "available"
	ACCOUNT_IN_PROCESS   AccountStatus = "in_process"
	ACCOUNT_RENTED       AccountStatus = "rented"
	ACCOUNT_UNDER_REVIEW AccountStatus = "under_review"
)

type PaymentStatus string

const (
	PAYMENT_PENDING  PaymentStatus = "pending"
	PAYMENT_PAID     PaymentStatus = "paid"
	PAYMENT_CANCELED PaymentStatus = "canceled"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateCheckoutRequestBody struct {
	PlatformID uint   `json:"platform" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone,omitempty"`
	TermDays   uint   `json:"term_days,omitempty"`
}

type CreateAccountRequestBody struct {
	PlatformID uint   `json:"platform" binding:"required"`
	Login      string `json:"login" binding:"required"`
	Secret     string `json:"secret" binding:"required"`
}

type CreatePlatformRequestBody struct {
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logo_url,omitempty"`
}

type OpenWarrantyRequestBody struct {
	Issue string `json:"issue" binding:"required"`
}

type ResolveWarrantyRequestBody struct {
	// Action is either "extend" (new end date on the same account) or
	// "replace" (swap in a fresh account, old one goes to review).
	Action    string  `json:"action" binding:"required,oneof=extend replace"`
	EndsAt    *string `json:"ends_at,omitempty" binding:"omitempty,rentabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	AccountID *uint   `json:"account,omitempty"`
}
