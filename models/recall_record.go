// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecallSource string

const (
	SourceFDA  RecallSource = "FDA"
	SourceUSDA RecallSource = "USDA"
)

// Sentinel values persisted when an ingestion tick finds no recalls or
// the upstream feed fails, so the table doubles as a run log.
const (
	SentinelExternalID = "0"
	SentinelTitle      = "No Recalls"
	SentinelDate       = "N/A"
)

type RecallRecord struct {
	ID            uint         `gorm:"primaryKey"`
	EID           uuid.UUID    `gorm:"type:uuid;not null;"`
	ExternalID    string       `gorm:"size:255;not null;index"`
	Title         string       `gorm:"type:text;not null"`
	SourceWebsite RecallSource `gorm:"size:16;not null;default:'FDA'"`
	Date          string       `gorm:"size:32;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (r *RecallRecord) BeforeCreate(tx *gorm.DB) (err error) {
	r.EID = uuid.New()
	return
}

func init() {
	AllModels = append(AllModels, &RecallRecord{})
}
