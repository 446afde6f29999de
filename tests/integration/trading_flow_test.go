package integration

import (
	"net/http"
	"testing"
)

func TestTradingFlow_StockLifecycle(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "trader@test.com", "password123")
	app.fundBank(t, userID, 2000)

	// Step 1: quotes are visible without auth
	rec := app.request("GET", "/api/v1/market/instruments", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing instruments, got %d: %s", rec.Code, rec.Body.String())
	}
	instruments := parseJSON(t, rec)["instruments"].([]interface{})
	if len(instruments) != 2 {
		t.Fatalf("expected 2 instruments, got %d", len(instruments))
	}

	// Step 2: buy 10 TECH at 150.00 (fee 0.5% = 7.50)
	rec = app.request("POST", "/api/v1/trade/buy",
		`{"asset_type":"stock","symbol":"TECH","quantity":10}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 buying, got %d: %s", rec.Code, rec.Body.String())
	}
	receipt := parseJSON(t, rec)
	if receipt["notional"].(float64) != 1500.00 {
		t.Errorf("expected notional 1500.00, got %v", receipt["notional"])
	}
	if receipt["fee"].(float64) != 7.50 {
		t.Errorf("expected fee 7.50, got %v", receipt["fee"])
	}
	if receipt["new_bank_balance"].(float64) != 492.50 {
		t.Errorf("expected bank 492.50 after buy, got %v", receipt["new_bank_balance"])
	}

	// Step 3: the position shows up in the portfolio
	rec = app.request("GET", "/api/v1/portfolio", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting portfolio, got %d: %s", rec.Code, rec.Body.String())
	}
	holdings := parseJSON(t, rec)["holdings"].([]interface{})
	if len(holdings) != 1 {
		t.Fatalf("expected one holding, got %d", len(holdings))
	}
	holding := holdings[0].(map[string]interface{})
	if holding["symbol"] != "TECH" || holding["shares"].(float64) != 10 {
		t.Errorf("unexpected holding: %v", holding)
	}

	// Step 4: valuation prices it at the live quote
	rec = app.request("GET", "/api/v1/portfolio/valuation", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting valuation, got %d: %s", rec.Code, rec.Body.String())
	}
	valuation := parseJSON(t, rec)
	if valuation["stock_value"].(float64) != 1500.00 {
		t.Errorf("expected stock value 1500.00, got %v", valuation["stock_value"])
	}

	// Step 5: overselling fails without touching state
	rec = app.request("POST", "/api/v1/trade/sell",
		`{"asset_type":"stock","symbol":"TECH","quantity":11}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 overselling, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 6: sell everything; price never moved, so the round trip
	// costs exactly the two fees
	rec = app.request("POST", "/api/v1/trade/sell",
		`{"asset_type":"stock","symbol":"TECH","quantity":10}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 selling, got %d: %s", rec.Code, rec.Body.String())
	}
	receipt = parseJSON(t, rec)
	if receipt["total"].(float64) != 1492.50 {
		t.Errorf("expected proceeds 1492.50, got %v", receipt["total"])
	}
	if receipt["new_bank_balance"].(float64) != 1985.00 {
		t.Errorf("expected bank 1985.00 after round trip, got %v", receipt["new_bank_balance"])
	}

	// Step 7: both trades are in the history, newest first
	rec = app.request("GET", "/api/v1/trade/history", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting history, got %d: %s", rec.Code, rec.Body.String())
	}
	history := parseJSON(t, rec)
	if history["total_items"].(float64) != 2 {
		t.Errorf("expected 2 trades, got %v", history["total_items"])
	}
	trades := history["data"].([]interface{})
	if trades[0].(map[string]interface{})["side"] != "sell" {
		t.Errorf("expected the sell first, got %v", trades[0])
	}
}

func TestTradingFlow_Gold(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "goldbug@test.com", "password123")
	app.fundBank(t, userID, 5000)

	// Buy 2 ounces at 1850.00 (fee 1% = 37.00)
	rec := app.request("POST", "/api/v1/trade/buy",
		`{"asset_type":"gold","quantity":2}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 buying gold, got %d: %s", rec.Code, rec.Body.String())
	}
	receipt := parseJSON(t, rec)
	if receipt["total"].(float64) != 3737.00 {
		t.Errorf("expected total 3737.00, got %v", receipt["total"])
	}
	if receipt["new_holding"].(float64) != 2 {
		t.Errorf("expected 2 ounces, got %v", receipt["new_holding"])
	}

	// Below the minimum lot
	rec = app.request("POST", "/api/v1/trade/buy",
		`{"asset_type":"gold","quantity":0.05}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 under minimum lot, got %d: %s", rec.Code, rec.Body.String())
	}

	// Fractional sales are fine
	rec = app.request("POST", "/api/v1/trade/sell",
		`{"asset_type":"gold","quantity":0.5}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 selling gold, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["new_holding"].(float64) != 1.5 {
		t.Error("expected 1.5 ounces after fractional sale")
	}
}

func TestTradingFlow_MarketClosed(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "late@test.com", "password123")
	app.fundBank(t, userID, 5000)

	// Close the market, then try to trade.
	if change := app.Engine.Evaluate(mustTime(t, "2026-03-02T18:00:00Z")); change == nil {
		t.Fatal("expected the market to close")
	}

	rec := app.request("POST", "/api/v1/trade/buy",
		`{"asset_type":"stock","symbol":"TECH","quantity":1}`, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 while closed, got %d: %s", rec.Code, rec.Body.String())
	}

	// The balance is untouched.
	rec = app.request("GET", "/api/v1/balance", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting balance, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["bank"].(float64) != 5000 {
		t.Error("expected bank balance untouched after rejected order")
	}
}
