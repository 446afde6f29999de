package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bourse/internal/market"
)

// MarketHandler exposes the read surface of the market engine plus the
// admin news override.
type MarketHandler struct {
	engine *market.Engine
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(engine *market.Engine) *MarketHandler {
	return &MarketHandler{engine: engine}
}

// GetState returns session state, sentiment, trend, and macro indicators
// @Summary     Market state
// @Description Current session state, sentiment, trend, and macro indicators
// @Tags        market
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Security    BearerAuth
// @Router      /market [get]
func (h *MarketHandler) GetState(c *gin.Context) {
	snap := h.engine.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"open":         snap.Open,
		"sentiment":    snap.Sentiment,
		"trend":        snap.Trend,
		"last_update":  snap.LastUpdate,
		"daily_volume": snap.DailyVolume,
		"macro":        snap.Macro,
	})
}

// GetInstruments returns every tradable instrument with current quotes
// @Summary     List instruments
// @Description Every tradable instrument with current price and intraday stats
// @Tags        market
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Security    BearerAuth
// @Router      /market/instruments [get]
func (h *MarketHandler) GetInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"instruments": h.engine.Instruments()})
}

// GetNews returns the active news set in relevance order
// @Summary     Active news
// @Description The current news cycle, in relevance order
// @Tags        market
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Security    BearerAuth
// @Router      /market/news [get]
func (h *MarketHandler) GetNews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"news": h.engine.News()})
}

// RegenerateNews forces a fresh news cycle (admin only)
// @Summary     Regenerate news
// @Description Replace the active news set and recompute the trend
// @Tags        market
// @Produce     json
// @Success     200 {object} map[string]interface{}
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Security    BearerAuth
// @Router      /market/news/regenerate [post]
func (h *MarketHandler) RegenerateNews(c *gin.Context) {
	news := h.engine.RegenerateNews()
	c.JSON(http.StatusOK, gin.H{"news": news})
}
