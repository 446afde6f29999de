package models

// Balance is the funds ledger row for a single user. The wallet holds
// spendable pocket money; the bank balance is what the trading engine
// debits and credits. Amounts are simulated dollars.
type Balance struct {
	Base
	UserID string  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Wallet float64 `gorm:"not null;default:0" json:"wallet"`
	Bank   float64 `gorm:"not null;default:0" json:"bank"`
}
