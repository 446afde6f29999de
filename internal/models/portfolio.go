package models

// Portfolio holds a user's gold position. Share positions live in Holding
// rows; gold is a single fractional quantity so it stays on the portfolio
// row itself.
type Portfolio struct {
	Base
	UserID     string  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	GoldOunces float64 `gorm:"not null;default:0" json:"gold_ounces"`

	Holdings []Holding `gorm:"foreignKey:PortfolioID" json:"holdings,omitempty"`
}

// Holding is one stock position inside a portfolio. Rows are deleted when
// the share count reaches zero, so a present row always has Shares > 0.
type Holding struct {
	Base
	PortfolioID string `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	UserID      string `gorm:"type:uuid;not null;uniqueIndex:uq_holdings_user_symbol" json:"user_id"`
	Symbol      string `gorm:"not null;uniqueIndex:uq_holdings_user_symbol" json:"symbol"`
	Shares      int64  `gorm:"not null" json:"shares"`
}
