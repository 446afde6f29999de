package models

import (
	"time"

	"bourse/internal/uuid"

	"gorm.io/gorm"
)

// MarketRecord stores a serialized market state snapshot. The core treats
// this as an opaque blob: the engine serializes its instruments, news, and
// session state to JSON and the latest row wins on restore.
type MarketRecord struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	State      []byte    `gorm:"not null" json:"state"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (m *MarketRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New()
	}
	return nil
}
