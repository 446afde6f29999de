package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bourse/internal/errors"
	"bourse/internal/models"
	"bourse/internal/pagination"
	"bourse/internal/services"
	"bourse/internal/validator"
)

// --- mock services ---

type mockTradingService struct {
	buyFn     func(userID string, asset models.TradeAsset, symbol string, quantity float64) (*services.Receipt, error)
	sellFn    func(userID string, asset models.TradeAsset, symbol string, quantity float64) (*services.Receipt, error)
	historyFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
}

func (m *mockTradingService) Buy(userID string, asset models.TradeAsset, symbol string, quantity float64) (*services.Receipt, error) {
	if m.buyFn != nil {
		return m.buyFn(userID, asset, symbol, quantity)
	}
	return &services.Receipt{}, nil
}

func (m *mockTradingService) Sell(userID string, asset models.TradeAsset, symbol string, quantity float64) (*services.Receipt, error) {
	if m.sellFn != nil {
		return m.sellFn(userID, asset, symbol, quantity)
	}
	return &services.Receipt{}, nil
}

func (m *mockTradingService) GetTradeHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	if m.historyFn != nil {
		return m.historyFn(userID, page)
	}
	resp := pagination.NewPageResponse[models.Trade](nil, 1, 20, 0)
	return &resp, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

const testUserID = "0195a9e6-0000-7000-8000-000000000001"

func setupTradingRouter(handler *TradingHandler) *gin.Engine {
	r := gin.New()
	r.POST("/trade/buy", injectUserID(testUserID), handler.Buy)
	r.POST("/trade/sell", injectUserID(testUserID), handler.Sell)
	r.GET("/trade/history", injectUserID(testUserID), handler.GetHistory)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestTradingHandler_Buy(t *testing.T) {
	t.Run("returns 200 with receipt", func(t *testing.T) {
		svc := &mockTradingService{
			buyFn: func(userID string, asset models.TradeAsset, symbol string, quantity float64) (*services.Receipt, error) {
				if userID != testUserID {
					t.Errorf("expected user %s, got %s", testUserID, userID)
				}
				return &services.Receipt{
					Side:       models.TradeSideBuy,
					AssetType:  asset,
					Symbol:     symbol,
					Quantity:   quantity,
					UnitPrice:  150,
					Notional:   1500,
					Fee:        7.5,
					Total:      1507.5,
					ExecutedAt: time.Now(),
				}, nil
			},
		}
		r := setupTradingRouter(NewTradingHandler(svc))

		rec := doRequest(r, "POST", "/trade/buy", `{"asset_type":"stock","symbol":"TECH","quantity":10}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total"] != 1507.5 {
			t.Errorf("expected total 1507.5, got %v", result["total"])
		}
		if result["side"] != "buy" {
			t.Errorf("expected side buy, got %v", result["side"])
		}
	})

	t.Run("returns 400 on bad asset type", func(t *testing.T) {
		r := setupTradingRouter(NewTradingHandler(&mockTradingService{}))

		rec := doRequest(r, "POST", "/trade/buy", `{"asset_type":"crypto","quantity":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing stock symbol", func(t *testing.T) {
		r := setupTradingRouter(NewTradingHandler(&mockTradingService{}))

		rec := doRequest(r, "POST", "/trade/buy", `{"asset_type":"stock","quantity":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed symbol", func(t *testing.T) {
		r := setupTradingRouter(NewTradingHandler(&mockTradingService{}))

		rec := doRequest(r, "POST", "/trade/buy", `{"asset_type":"stock","symbol":"tech!","quantity":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("gold order needs no symbol", func(t *testing.T) {
		svc := &mockTradingService{
			buyFn: func(_ string, asset models.TradeAsset, symbol string, quantity float64) (*services.Receipt, error) {
				if asset != models.TradeAssetGold {
					t.Errorf("expected gold asset, got %s", asset)
				}
				return &services.Receipt{AssetType: asset, Quantity: quantity}, nil
			},
		}
		r := setupTradingRouter(NewTradingHandler(svc))

		rec := doRequest(r, "POST", "/trade/buy", `{"asset_type":"gold","quantity":0.5}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 409 while market closed", func(t *testing.T) {
		svc := &mockTradingService{
			buyFn: func(string, models.TradeAsset, string, float64) (*services.Receipt, error) {
				return nil, apperrors.ErrMarketClosed
			},
		}
		r := setupTradingRouter(NewTradingHandler(svc))

		rec := doRequest(r, "POST", "/trade/buy", `{"asset_type":"gold","quantity":1}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MARKET_CLOSED")
	})
}

func TestTradingHandler_Sell(t *testing.T) {
	t.Run("returns 400 on insufficient holdings", func(t *testing.T) {
		svc := &mockTradingService{
			sellFn: func(string, models.TradeAsset, string, float64) (*services.Receipt, error) {
				return nil, apperrors.ErrInsufficientHoldings
			},
		}
		r := setupTradingRouter(NewTradingHandler(svc))

		rec := doRequest(r, "POST", "/trade/sell", `{"asset_type":"stock","symbol":"TECH","quantity":5}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_HOLDINGS")
	})

	t.Run("returns 404 on unknown symbol", func(t *testing.T) {
		svc := &mockTradingService{
			sellFn: func(string, models.TradeAsset, string, float64) (*services.Receipt, error) {
				return nil, apperrors.ErrUnknownSymbol
			},
		}
		r := setupTradingRouter(NewTradingHandler(svc))

		rec := doRequest(r, "POST", "/trade/sell", `{"asset_type":"stock","symbol":"NOPE","quantity":5}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTradingHandler_GetHistory(t *testing.T) {
	t.Run("passes pagination through", func(t *testing.T) {
		svc := &mockTradingService{
			historyFn: func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
				if page.Page != 2 || page.PageSize != 5 {
					t.Errorf("expected page 2 size 5, got %+v", page)
				}
				resp := pagination.NewPageResponse[models.Trade](nil, page.Page, page.PageSize, 12)
				return &resp, nil
			},
		}
		r := setupTradingRouter(NewTradingHandler(svc))

		rec := doRequest(r, "GET", "/trade/history?page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(12) {
			t.Errorf("expected 12 total items, got %v", result["total_items"])
		}
	})

	t.Run("returns 400 on bad page size", func(t *testing.T) {
		r := setupTradingRouter(NewTradingHandler(&mockTradingService{}))

		rec := doRequest(r, "GET", "/trade/history?page_size=900", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
