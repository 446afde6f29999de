package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "bourse/internal/errors"
	"bourse/internal/market"
	"bourse/internal/models"
	"bourse/internal/pagination"
)

// Default fee rates and the minimum gold lot, used when the config leaves
// them zero.
const (
	defaultStockFeeRate = 0.005
	defaultGoldFeeRate  = 0.01
	defaultGoldMinLot   = 0.1
)

// TradingConfig holds fee rates and order limits.
type TradingConfig struct {
	StockFeeRate float64
	GoldFeeRate  float64
	GoldMinLot   float64
}

// tradingService validates and executes orders. Execution happens inside
// the market engine's lock and a single database transaction, so the
// quoted price cannot move mid-order and ledger/portfolio updates are
// all-or-nothing.
type tradingService struct {
	db         *gorm.DB
	market     *market.Engine
	ledger     LedgerServicer
	portfolios PortfolioServicer
	cfg        TradingConfig
}

// NewTradingService creates a new TradingServicer.
func NewTradingService(db *gorm.DB, engine *market.Engine, ledger LedgerServicer, portfolios PortfolioServicer, cfg TradingConfig) TradingServicer {
	if cfg.StockFeeRate == 0 {
		cfg.StockFeeRate = defaultStockFeeRate
	}
	if cfg.GoldFeeRate == 0 {
		cfg.GoldFeeRate = defaultGoldFeeRate
	}
	if cfg.GoldMinLot == 0 {
		cfg.GoldMinLot = defaultGoldMinLot
	}
	return &tradingService{
		db:         db,
		market:     engine,
		ledger:     ledger,
		portfolios: portfolios,
		cfg:        cfg,
	}
}

// Buy executes a market-price purchase. The fee is a surcharge: total
// cost = notional + fee.
func (s *tradingService) Buy(userID string, asset models.TradeAsset, symbol string, quantity float64) (*Receipt, error) {
	return s.execute(userID, models.TradeSideBuy, asset, symbol, quantity)
}

// Sell executes a market-price sale. The fee is deducted from proceeds:
// net = notional - fee.
func (s *tradingService) Sell(userID string, asset models.TradeAsset, symbol string, quantity float64) (*Receipt, error) {
	return s.execute(userID, models.TradeSideSell, asset, symbol, quantity)
}

// execute runs the order pipeline. Preconditions are checked in a fixed
// order: market open, quantity, symbol, holdings, funds. Each failure is
// a distinct error code.
func (s *tradingService) execute(userID string, side models.TradeSide, asset models.TradeAsset, symbol string, quantity float64) (*Receipt, error) {
	var receipt *Receipt

	err := s.market.Execute(func(view market.MarketView) error {
		if !view.Open() {
			return apperrors.ErrMarketClosed
		}

		if err := s.validateQuantity(side, asset, quantity); err != nil {
			return err
		}

		kind := market.KindStock
		if asset == models.TradeAssetGold {
			kind = market.KindGold
			symbol = ""
		}
		price, err := view.Quote(kind, symbol)
		if err != nil {
			return err
		}

		notional := price * quantity
		fee := notional * s.feeRate(asset)

		// Buy: bank pays notional plus fee. Sell: bank receives
		// notional minus fee. The asymmetry is intentional.
		var bankDelta float64
		if side == models.TradeSideBuy {
			bankDelta = -(notional + fee)
		} else {
			bankDelta = notional - fee
		}

		return s.db.Transaction(func(tx *gorm.DB) error {
			// Sell-side holdings check happens inside the portfolio
			// delta; buy-side funds check happens before the debit.
			if side == models.TradeSideBuy {
				balance, err := getOrCreateBalance(tx, userID)
				if err != nil {
					return err
				}
				if balance.Bank < notional+fee {
					return apperrors.ErrInsufficientFunds
				}
			}

			var newHolding float64
			if asset == models.TradeAssetGold {
				ounces, err := s.portfolios.ApplyGoldDelta(tx, userID, signed(quantity, side))
				if err != nil {
					return err
				}
				newHolding = ounces
			} else {
				shares, err := s.portfolios.ApplyStockDelta(tx, userID, symbol, int64(signed(quantity, side)))
				if err != nil {
					return err
				}
				newHolding = float64(shares)
			}

			balance, err := s.ledger.AdjustBalance(tx, userID, 0, bankDelta)
			if err != nil {
				return err
			}

			executedAt := time.Now()
			trade := &models.Trade{
				UserID:     userID,
				Side:       side,
				AssetType:  asset,
				Symbol:     symbol,
				Quantity:   quantity,
				UnitPrice:  price,
				Notional:   notional,
				Fee:        fee,
				Total:      notional + fee,
				ExecutedAt: executedAt,
			}
			if side == models.TradeSideSell {
				trade.Total = notional - fee
			}
			if err := tx.Create(trade).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
			}

			view.RecordVolume(trade.Symbol, int64(math.Ceil(quantity)))

			receipt = &Receipt{
				Side:           side,
				AssetType:      asset,
				Symbol:         symbol,
				Quantity:       quantity,
				UnitPrice:      price,
				Notional:       notional,
				Fee:            fee,
				Total:          trade.Total,
				NewHolding:     newHolding,
				NewBankBalance: balance.Bank,
				ExecutedAt:     executedAt,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

func (s *tradingService) validateQuantity(side models.TradeSide, asset models.TradeAsset, quantity float64) error {
	if quantity <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidQuantity, "quantity must be greater than zero")
	}

	switch asset {
	case models.TradeAssetGold:
		if side == models.TradeSideBuy && quantity < s.cfg.GoldMinLot {
			return apperrors.WithMessage(apperrors.ErrInvalidQuantity, "gold orders have a minimum lot of 0.1 ounces")
		}
	case models.TradeAssetStock:
		if quantity != math.Trunc(quantity) {
			return apperrors.WithMessage(apperrors.ErrInvalidQuantity, "stock orders must be whole shares")
		}
	}
	return nil
}

func (s *tradingService) feeRate(asset models.TradeAsset) float64 {
	if asset == models.TradeAssetGold {
		return s.cfg.GoldFeeRate
	}
	return s.cfg.StockFeeRate
}

func signed(quantity float64, side models.TradeSide) float64 {
	if side == models.TradeSideSell {
		return -quantity
	}
	return quantity
}

// GetTradeHistory lists a user's executed trades, newest first.
func (s *tradingService) GetTradeHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	page.Defaults()

	base := s.db.Model(&models.Trade{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var trades []models.Trade
	if err := base.Order("executed_at DESC").Scopes(pagination.Paginate(page)).Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(trades, page.Page, page.PageSize, totalItems)
	return &result, nil
}
