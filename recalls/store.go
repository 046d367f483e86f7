// SPDX-License-Identifier: GPL-3.0-only

package recalls

import (
	"recallguard-server/models"

	"gorm.io/gorm"
)

type GormStore struct {
	Conn *gorm.DB
}

func NewGormStore(conn *gorm.DB) *GormStore {
	return &GormStore{Conn: conn}
}

// SaveRecord persists a recall record once per (external_id, source,
// date); re-running a tick over the same range is a no-op. Sentinel
// rows are exempt from dedup so the table keeps one row per empty run.
func (s *GormStore) SaveRecord(record *models.RecallRecord) error {
	if record.ExternalID == models.SentinelExternalID {
		return s.Conn.Create(record).Error
	}
	return s.Conn.
		Where("external_id = ? AND source_website = ? AND date = ?",
			record.ExternalID, record.SourceWebsite, record.Date).
		FirstOrCreate(record).Error
}
