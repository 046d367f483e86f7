// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset holds the argon2id hash of a reset secret issued to a
// user out-of-band. The raw secret is never persisted. At most one row
// is live per user; issuing a new token deletes any prior rows.
type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	TokenHash string `gorm:"size:255;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	UserID    uint           `gorm:"index"`
	User      User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &PasswordReset{})
}
