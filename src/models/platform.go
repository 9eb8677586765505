package models

import "netrix/src/types"

type Platform struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `gorm:"uniqueIndex" json:"name"`
	LogoURL string `json:"logo_url,omitempty"`

	Accounts []Account `json:"accounts,omitempty"`

	types.Timestamps
}
