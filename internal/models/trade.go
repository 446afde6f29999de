package models

import "time"

// TradeSide represents the direction of an executed order.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// TradeAsset represents the asset class of an executed order.
type TradeAsset string

const (
	TradeAssetStock TradeAsset = "stock"
	TradeAssetGold  TradeAsset = "gold"
)

// Trade is the persisted record of one executed order: the receipt the
// trading engine returned, kept for history listings. Orders themselves
// are ephemeral and never stored.
type Trade struct {
	Base
	UserID     string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Side       TradeSide  `gorm:"not null" json:"side"`
	AssetType  TradeAsset `gorm:"not null" json:"asset_type"`
	Symbol     string     `json:"symbol,omitempty"`
	Quantity   float64    `gorm:"not null" json:"quantity"`
	UnitPrice  float64    `gorm:"not null" json:"unit_price"`
	Notional   float64    `gorm:"not null" json:"notional"`
	Fee        float64    `gorm:"not null" json:"fee"`
	Total      float64    `gorm:"not null" json:"total"`
	ExecutedAt time.Time  `gorm:"not null;index" json:"executed_at"`
}
