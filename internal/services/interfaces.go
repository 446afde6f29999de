package services

import (
	"time"

	"gorm.io/gorm"

	"bourse/internal/market"
	"bourse/internal/models"
	"bourse/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// LedgerServicer is the funds ledger: per-user wallet and bank balances.
// The trading engine exclusively moves the bank balance.
type LedgerServicer interface {
	// GetBalance returns the user's balances, creating a zero row on
	// first access.
	GetBalance(userID string) (*models.Balance, error)
	// AdjustBalance applies signed deltas inside the caller's
	// transaction and fails if either balance would go negative.
	AdjustBalance(tx *gorm.DB, userID string, walletDelta, bankDelta float64) (*models.Balance, error)
	// Deposit moves wallet money into the bank.
	Deposit(userID string, amount float64) (*models.Balance, error)
	// Withdraw moves bank money back to the wallet.
	Withdraw(userID string, amount float64) (*models.Balance, error)
}

// PositionValue is one priced stock position in a valuation.
type PositionValue struct {
	Symbol string  `json:"symbol"`
	Shares int64   `json:"shares"`
	Price  float64 `json:"price"`
	Value  float64 `json:"value"`
}

// PortfolioValuation is a portfolio priced at current market quotes.
type PortfolioValuation struct {
	GoldOunces float64         `json:"gold_ounces"`
	GoldValue  float64         `json:"gold_value"`
	StockValue float64         `json:"stock_value"`
	TotalValue float64         `json:"total_value"`
	Positions  []PositionValue `json:"positions"`
}

// PortfolioServicer stores per-user holdings. Get never fails for a
// missing user: it returns an empty default portfolio.
type PortfolioServicer interface {
	Get(userID string) (*models.Portfolio, error)
	// ApplyGoldDelta adjusts the gold position inside the caller's
	// transaction and returns the new ounce count.
	ApplyGoldDelta(tx *gorm.DB, userID string, deltaOunces float64) (float64, error)
	// ApplyStockDelta adjusts a share position inside the caller's
	// transaction, deleting the row when the count reaches zero, and
	// returns the new share count.
	ApplyStockDelta(tx *gorm.DB, userID, symbol string, deltaShares int64) (int64, error)
	// Valuation prices the portfolio at current market quotes.
	Valuation(userID string) (*PortfolioValuation, error)
	// RecordValuations persists a valuation snapshot for every user
	// holding anything; called at market close.
	RecordValuations(at time.Time) (int, error)
	// GetValuationHistory lists a user's recorded snapshots, newest first.
	GetValuationHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ValuationSnapshot], error)
}

// Receipt is the result of one executed order.
type Receipt struct {
	Side           models.TradeSide  `json:"side"`
	AssetType      models.TradeAsset `json:"asset_type"`
	Symbol         string            `json:"symbol,omitempty"`
	Quantity       float64           `json:"quantity"`
	UnitPrice      float64           `json:"unit_price"`
	Notional       float64           `json:"notional"`
	Fee            float64           `json:"fee"`
	Total          float64           `json:"total"`
	NewHolding     float64           `json:"new_holding"`
	NewBankBalance float64           `json:"new_bank_balance"`
	ExecutedAt     time.Time         `json:"executed_at"`
}

// TradingServicer validates and executes orders against current market
// prices, updating ledger and portfolio atomically.
type TradingServicer interface {
	Buy(userID string, asset models.TradeAsset, symbol string, quantity float64) (*Receipt, error)
	Sell(userID string, asset models.TradeAsset, symbol string, quantity float64) (*Receipt, error)
	GetTradeHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
}

// MarketStateServicer persists the engine state blob and restores it at
// boot. The stored shape is opaque JSON.
type MarketStateServicer interface {
	SaveState(snap market.StateSnapshot) error
	LoadState() (*market.StateSnapshot, error)
}
