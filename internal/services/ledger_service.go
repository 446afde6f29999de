package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "bourse/internal/errors"
	"bourse/internal/models"
)

// ledgerService handles the per-user funds ledger.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// GetBalance returns the user's balances, creating a zero row on first access.
func (s *ledgerService) GetBalance(userID string) (*models.Balance, error) {
	return getOrCreateBalance(s.db, userID)
}

func getOrCreateBalance(tx *gorm.DB, userID string) (*models.Balance, error) {
	var balance models.Balance
	err := tx.Where("user_id = ?", userID).First(&balance).Error
	if err == nil {
		return &balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	balance = models.Balance{UserID: userID}
	if err := tx.Create(&balance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return &balance, nil
}

// AdjustBalance applies signed wallet and bank deltas inside the caller's
// transaction. Either balance going negative fails the whole transaction.
func (s *ledgerService) AdjustBalance(tx *gorm.DB, userID string, walletDelta, bankDelta float64) (*models.Balance, error) {
	balance, err := getOrCreateBalance(tx, userID)
	if err != nil {
		return nil, err
	}

	newWallet := balance.Wallet + walletDelta
	newBank := balance.Bank + bankDelta
	if newWallet < 0 || newBank < 0 {
		return nil, apperrors.ErrInsufficientBalance
	}

	if err := tx.Model(balance).Updates(map[string]interface{}{
		"wallet": newWallet,
		"bank":   newBank,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	balance.Wallet = newWallet
	balance.Bank = newBank
	return balance, nil
}

// Deposit moves wallet money into the bank.
func (s *ledgerService) Deposit(userID string, amount float64) (*models.Balance, error) {
	return s.transfer(userID, amount, -amount, amount)
}

// Withdraw moves bank money back to the wallet.
func (s *ledgerService) Withdraw(userID string, amount float64) (*models.Balance, error) {
	return s.transfer(userID, amount, amount, -amount)
}

func (s *ledgerService) transfer(userID string, amount, walletDelta, bankDelta float64) (*models.Balance, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	var result *models.Balance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = s.AdjustBalance(tx, userID, walletDelta, bankDelta)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
