package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bourse/internal/errors"
	"bourse/internal/pagination"
	"bourse/internal/services"
)

// PortfolioHandler handles portfolio and valuation endpoints.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Get returns the user's raw holdings
// @Summary     Get portfolio
// @Description Current gold ounces and stock positions
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} models.Portfolio
// @Security    BearerAuth
// @Router      /portfolio [get]
func (h *PortfolioHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.Get(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// GetValuation prices the portfolio at current quotes
// @Summary     Portfolio valuation
// @Description Portfolio priced at the latest market quotes
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} services.PortfolioValuation
// @Security    BearerAuth
// @Router      /portfolio/valuation [get]
func (h *PortfolioHandler) GetValuation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	valuation, err := h.portfolioService.Valuation(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, valuation)
}

// GetValuationHistory lists recorded close-of-session snapshots
// @Summary     Valuation history
// @Description Paginated valuation snapshots recorded at market close, newest first
// @Tags        portfolio
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.ValuationSnapshot]
// @Security    BearerAuth
// @Router      /portfolio/valuations [get]
func (h *PortfolioHandler) GetValuationHistory(c *gin.Context) {
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

	result, err := h.portfolioService.GetValuationHistory(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
