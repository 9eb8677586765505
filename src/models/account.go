package models

import "netrix/src/types"

// Account is an operator-owned platform credential pair leased out via
// rentals. Secret is AES-GCM encrypted at rest; it never leaves the API
// in plaintext.
type Account struct {
	ID         uint                `gorm:"primarykey" json:"id"`
	PlatformID uint                `json:"platform_id,omitempty"`
	Login      string              `json:"login,omitempty"`
	Secret     string              `json:"-"`
	Status     types.AccountStatus `gorm:"default:'available';index" json:"status,omitempty"`

	Platform Platform `json:"platform,omitempty"`

	types.Timestamps
}
