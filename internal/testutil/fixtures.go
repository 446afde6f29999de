package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"bourse/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBalance creates a ledger row with the given bank balance.
func CreateTestBalance(t *testing.T, db *gorm.DB, userID string, bank float64) *models.Balance {
	t.Helper()

	balance := &models.Balance{
		UserID: userID,
		Bank:   bank,
	}
	if err := db.Create(balance).Error; err != nil {
		t.Fatalf("failed to create test balance: %v", err)
	}
	return balance
}

// CreateTestPortfolio creates an empty portfolio for the user.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID string) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{UserID: userID}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestHolding creates a stock position in the given portfolio.
func CreateTestHolding(t *testing.T, db *gorm.DB, portfolio *models.Portfolio, symbol string, shares int64) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		PortfolioID: portfolio.ID,
		UserID:      portfolio.UserID,
		Symbol:      symbol,
		Shares:      shares,
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}
