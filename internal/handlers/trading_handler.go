package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bourse/internal/errors"
	"bourse/internal/models"
	"bourse/internal/pagination"
	"bourse/internal/services"
)

// TradingHandler handles order placement and trade history.
type TradingHandler struct {
	tradingService services.TradingServicer
}

// NewTradingHandler creates a new TradingHandler.
func NewTradingHandler(tradingService services.TradingServicer) *TradingHandler {
	return &TradingHandler{tradingService: tradingService}
}

// OrderRequest represents a buy or sell order payload. Symbol is required
// for stock orders and ignored for gold.
type OrderRequest struct {
	AssetType string  `json:"asset_type" binding:"required,asset_type"`
	Symbol    string  `json:"symbol" binding:"omitempty,ticker_symbol"`
	Quantity  float64 `json:"quantity" binding:"required"`
}

// Buy executes a market-price purchase
// @Summary     Buy an asset
// @Description Buy stock shares or gold ounces at the current market price
// @Tags        trading
// @Accept      json
// @Produce     json
// @Param       request body OrderRequest true "Order details"
// @Success     200 {object} services.Receipt
// @Failure     400 {object} ErrorResponse "Invalid quantity or input"
// @Failure     404 {object} ErrorResponse "Unknown symbol"
// @Failure     409 {object} ErrorResponse "Market closed"
// @Security    BearerAuth
// @Router      /trade/buy [post]
func (h *TradingHandler) Buy(c *gin.Context) {
	h.placeOrder(c, models.TradeSideBuy)
}

// Sell executes a market-price sale
// @Summary     Sell an asset
// @Description Sell stock shares or gold ounces at the current market price
// @Tags        trading
// @Accept      json
// @Produce     json
// @Param       request body OrderRequest true "Order details"
// @Success     200 {object} services.Receipt
// @Failure     400 {object} ErrorResponse "Invalid quantity or insufficient holdings"
// @Failure     404 {object} ErrorResponse "Unknown symbol"
// @Failure     409 {object} ErrorResponse "Market closed"
// @Security    BearerAuth
// @Router      /trade/sell [post]
func (h *TradingHandler) Sell(c *gin.Context) {
	h.placeOrder(c, models.TradeSideSell)
}

func (h *TradingHandler) placeOrder(c *gin.Context, side models.TradeSide) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset := models.TradeAsset(req.AssetType)
	if asset == models.TradeAssetStock && req.Symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required for stock orders"))
		return
	}

	var receipt *services.Receipt
	if side == models.TradeSideBuy {
		receipt, err = h.tradingService.Buy(userID, asset, req.Symbol, req.Quantity)
	} else {
		receipt, err = h.tradingService.Sell(userID, asset, req.Symbol, req.Quantity)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// GetHistory lists the user's executed trades
// @Summary     Trade history
// @Description Paginated list of the user's executed trades, newest first
// @Tags        trading
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Trade]
// @Security    BearerAuth
// @Router      /trade/history [get]
func (h *TradingHandler) GetHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tradingService.GetTradeHistory(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
