package models

import (
	"time"

	"bourse/internal/uuid"

	"gorm.io/gorm"
)

// ValuationSnapshot is a point-in-time valuation of a user's portfolio at
// current market quotes, recorded at each market close. Immutable
// time-series data, so no Base embed and no soft deletes.
type ValuationSnapshot struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	StockValue float64   `gorm:"not null" json:"stock_value"`
	GoldValue  float64   `gorm:"not null" json:"gold_value"`
	TotalValue float64   `gorm:"not null" json:"total_value"`
	RecordedAt time.Time `gorm:"not null" json:"recorded_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (v *ValuationSnapshot) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New()
	}
	return nil
}
