package services

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "bourse/internal/errors"
	"bourse/internal/market"
	"bourse/internal/models"
)

// marketStateService persists the engine snapshot as an opaque JSON blob.
// Rows are append-only; the latest row wins on restore.
type marketStateService struct {
	db *gorm.DB
}

// NewMarketStateService creates a new MarketStateServicer.
func NewMarketStateService(db *gorm.DB) MarketStateServicer {
	return &marketStateService{db: db}
}

// SaveState stores a snapshot. Implements market.StatePersister.
func (s *marketStateService) SaveState(snap market.StateSnapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	record := &models.MarketRecord{State: blob, RecordedAt: snap.LastUpdate}
	if err := s.db.Create(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	// Keep only a short tail of history; old snapshots have no readers.
	if err := s.db.Exec(
		"DELETE FROM market_records WHERE id NOT IN (SELECT id FROM market_records ORDER BY recorded_at DESC LIMIT 100)",
	).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	return nil
}

// LoadState returns the most recent snapshot, or nil when none exists.
func (s *marketStateService) LoadState() (*market.StateSnapshot, error) {
	var record models.MarketRecord
	err := s.db.Order("recorded_at DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snap market.StateSnapshot
	if err := json.Unmarshal(record.State, &snap); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &snap, nil
}
