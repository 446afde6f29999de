package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bourse/internal/errors"
	"bourse/internal/models"
	"bourse/internal/services"
)

// LedgerHandler handles balance lookups and wallet/bank transfers.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// TransferRequest represents a deposit or withdrawal payload.
type TransferRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// GetBalance returns the user's wallet and bank balances
// @Summary     Get balance
// @Description Current wallet and bank balances
// @Tags        ledger
// @Produce     json
// @Success     200 {object} models.Balance
// @Security    BearerAuth
// @Router      /balance [get]
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.ledgerService.GetBalance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// Deposit moves wallet money into the bank account
// @Summary     Deposit
// @Description Move money from the wallet into the bank account used for trading
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Param       request body TransferRequest true "Amount to deposit"
// @Success     200 {object} models.Balance
// @Failure     400 {object} ErrorResponse "Invalid amount or insufficient balance"
// @Security    BearerAuth
// @Router      /balance/deposit [post]
func (h *LedgerHandler) Deposit(c *gin.Context) {
	h.transfer(c, h.ledgerService.Deposit)
}

// Withdraw moves bank money back to the wallet
// @Summary     Withdraw
// @Description Move money from the bank account back to the wallet
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Param       request body TransferRequest true "Amount to withdraw"
// @Success     200 {object} models.Balance
// @Failure     400 {object} ErrorResponse "Invalid amount or insufficient balance"
// @Security    BearerAuth
// @Router      /balance/withdraw [post]
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	h.transfer(c, h.ledgerService.Withdraw)
}

func (h *LedgerHandler) transfer(c *gin.Context, fn func(string, float64) (*models.Balance, error)) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	balance, err := fn(userID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}
