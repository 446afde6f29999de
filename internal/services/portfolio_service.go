package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "bourse/internal/errors"
	"bourse/internal/market"
	"bourse/internal/models"
	"bourse/internal/pagination"
)

// portfolioService stores per-user holdings and prices them at current
// market quotes.
type portfolioService struct {
	db     *gorm.DB
	market *market.Engine
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, engine *market.Engine) PortfolioServicer {
	return &portfolioService{db: db, market: engine}
}

// Get returns the user's portfolio with holdings preloaded. A user who
// never traded gets an empty default portfolio, never an error.
func (s *portfolioService) Get(userID string) (*models.Portfolio, error) {
	return getOrCreatePortfolio(s.db, userID)
}

func getOrCreatePortfolio(tx *gorm.DB, userID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := tx.Preload("Holdings").Where("user_id = ?", userID).First(&portfolio).Error
	if err == nil {
		return &portfolio, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	portfolio = models.Portfolio{UserID: userID}
	if err := tx.Create(&portfolio).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return &portfolio, nil
}

// ApplyGoldDelta adjusts the gold position inside the caller's
// transaction and returns the new ounce count.
func (s *portfolioService) ApplyGoldDelta(tx *gorm.DB, userID string, deltaOunces float64) (float64, error) {
	portfolio, err := getOrCreatePortfolio(tx, userID)
	if err != nil {
		return 0, err
	}

	newOunces := portfolio.GoldOunces + deltaOunces
	if newOunces < 0 {
		return 0, apperrors.ErrInsufficientHoldings
	}

	if err := tx.Model(portfolio).Update("gold_ounces", newOunces).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return newOunces, nil
}

// ApplyStockDelta adjusts a share position inside the caller's
// transaction. Zero-count rows are deleted so a present row always holds
// shares.
func (s *portfolioService) ApplyStockDelta(tx *gorm.DB, userID, symbol string, deltaShares int64) (int64, error) {
	portfolio, err := getOrCreatePortfolio(tx, userID)
	if err != nil {
		return 0, err
	}

	var holding models.Holding
	err = tx.Where("user_id = ? AND symbol = ?", userID, symbol).First(&holding).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if deltaShares < 0 {
			return 0, apperrors.ErrInsufficientHoldings
		}
		holding = models.Holding{
			PortfolioID: portfolio.ID,
			UserID:      userID,
			Symbol:      symbol,
			Shares:      deltaShares,
		}
		if err := tx.Create(&holding).Error; err != nil {
			return 0, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
		}
		return holding.Shares, nil

	case err != nil:
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	newShares := holding.Shares + deltaShares
	if newShares < 0 {
		return 0, apperrors.ErrInsufficientHoldings
	}

	if newShares == 0 {
		if err := tx.Unscoped().Delete(&holding).Error; err != nil {
			return 0, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
		}
		return 0, nil
	}

	if err := tx.Model(&holding).Update("shares", newShares).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return newShares, nil
}

// Valuation prices the portfolio at current market quotes. Holdings whose
// symbol has left the universe are valued at zero rather than failing.
func (s *portfolioService) Valuation(userID string) (*PortfolioValuation, error) {
	portfolio, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.value(portfolio), nil
}

func (s *portfolioService) value(portfolio *models.Portfolio) *PortfolioValuation {
	quotes := make(map[string]float64)
	var goldPrice float64
	for _, inst := range s.market.Instruments() {
		if inst.Kind == market.KindGold {
			goldPrice = inst.Price
			continue
		}
		quotes[inst.Symbol] = inst.Price
	}

	valuation := &PortfolioValuation{
		GoldOunces: portfolio.GoldOunces,
		GoldValue:  portfolio.GoldOunces * goldPrice,
		Positions:  make([]PositionValue, 0, len(portfolio.Holdings)),
	}

	for _, holding := range portfolio.Holdings {
		price := quotes[holding.Symbol]
		value := float64(holding.Shares) * price
		valuation.StockValue += value
		valuation.Positions = append(valuation.Positions, PositionValue{
			Symbol: holding.Symbol,
			Shares: holding.Shares,
			Price:  price,
			Value:  value,
		})
	}

	valuation.TotalValue = valuation.GoldValue + valuation.StockValue
	return valuation
}

// RecordValuations stores a valuation snapshot for every portfolio,
// called at market close. Implements market.ValuationRecorder.
func (s *portfolioService) RecordValuations(at time.Time) (int, error) {
	var portfolios []models.Portfolio
	if err := s.db.Preload("Holdings").Find(&portfolios).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for i := range portfolios {
		valuation := s.value(&portfolios[i])

		snapshot := &models.ValuationSnapshot{
			UserID:     portfolios[i].UserID,
			StockValue: valuation.StockValue,
			GoldValue:  valuation.GoldValue,
			TotalValue: valuation.TotalValue,
			RecordedAt: at,
		}
		if err := s.db.Create(snapshot).Error; err != nil {
			return count, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
		}
		count++
	}

	return count, nil
}

// GetValuationHistory lists a user's recorded snapshots, newest first.
func (s *portfolioService) GetValuationHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ValuationSnapshot], error) {
	page.Defaults()

	base := s.db.Model(&models.ValuationSnapshot{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.ValuationSnapshot
	if err := base.Order("recorded_at DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
