package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"bourse/internal/market"
)

func newTestEngine(t *testing.T) *market.Engine {
	t.Helper()
	engine, err := market.NewEngine(market.Config{Seed: 1})
	if err != nil {
		t.Fatalf("failed to build market engine: %v", err)
	}
	return engine
}

func setupMarketRouter(handler *MarketHandler) *gin.Engine {
	r := gin.New()
	r.GET("/market", handler.GetState)
	r.GET("/market/instruments", handler.GetInstruments)
	r.GET("/market/news", handler.GetNews)
	r.POST("/market/news/regenerate", handler.RegenerateNews)
	return r
}

func TestMarketHandler_GetState(t *testing.T) {
	handler := NewMarketHandler(newTestEngine(t))
	r := setupMarketRouter(handler)

	rec := doRequest(r, "GET", "/market", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["open"] != false {
		t.Errorf("expected closed market, got %v", result["open"])
	}
	if result["trend"] == nil {
		t.Error("expected a trend in the state")
	}
	macro, ok := result["macro"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected macro object, got %v", result["macro"])
	}
	if macro["gdp_growth"] == nil {
		t.Error("expected GDP growth in macro indicators")
	}
}

func TestMarketHandler_GetInstruments(t *testing.T) {
	handler := NewMarketHandler(newTestEngine(t))
	r := setupMarketRouter(handler)

	rec := doRequest(r, "GET", "/market/instruments", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	instruments, ok := result["instruments"].([]interface{})
	if !ok {
		t.Fatalf("expected instruments array, got %v", result["instruments"])
	}
	if len(instruments) != 9 {
		t.Errorf("expected 9 instruments, got %d", len(instruments))
	}
	first := instruments[0].(map[string]interface{})
	if first["price"] == nil || first["symbol"] == nil {
		t.Errorf("instrument missing quote fields: %v", first)
	}
}

func TestMarketHandler_GetNews(t *testing.T) {
	handler := NewMarketHandler(newTestEngine(t))
	r := setupMarketRouter(handler)

	rec := doRequest(r, "GET", "/market/news", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	news, ok := result["news"].([]interface{})
	if !ok {
		t.Fatalf("expected news array, got %v", result["news"])
	}
	if len(news) != 5 {
		t.Errorf("expected 5 news events, got %d", len(news))
	}
	first := news[0].(map[string]interface{})
	if first["headline"] == "" {
		t.Error("expected non-empty headline")
	}
}

func TestMarketHandler_RegenerateNews(t *testing.T) {
	handler := NewMarketHandler(newTestEngine(t))
	r := setupMarketRouter(handler)

	rec := doRequest(r, "POST", "/market/news/regenerate", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if _, ok := result["news"].([]interface{}); !ok {
		t.Fatalf("expected news array, got %v", result["news"])
	}
}
