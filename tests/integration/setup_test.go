package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bourse/internal/handlers"
	"bourse/internal/logger"
	"bourse/internal/market"
	"bourse/internal/middleware"
	"bourse/internal/models"
	"bourse/internal/services"
	"bourse/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Engine *market.Engine
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Balance{},
		&models.Portfolio{},
		&models.Holding{},
		&models.Trade{},
		&models.ValuationSnapshot{},
		&models.MarketRecord{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack with an open market at fixed
// quotes: gold 1850.00, TECH 150.00. No ticks run, so prices stay put.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	engine, err := market.NewEngine(market.Config{
		Seed: 1,
		Instruments: []market.Instrument{
			{Kind: market.KindGold, Symbol: "XAU", Name: "Gold", Price: 1850.0, Volatility: 0.005},
			{Kind: market.KindStock, Symbol: "TECH", Name: "Techtron Systems", Sector: "Technology", Price: 150.0, Volatility: 0.03},
		},
	})
	if err != nil {
		t.Fatalf("failed to build market engine: %v", err)
	}
	if change := engine.Evaluate(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)); change == nil {
		t.Fatal("expected the market to open")
	}

	// Services
	userService := services.NewUserService(db)
	ledgerService := services.NewLedgerService(db)
	portfolioService := services.NewPortfolioService(db, engine)
	tradingService := services.NewTradingService(db, engine, ledgerService, portfolioService, services.TradingConfig{})

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	marketHandler := handlers.NewMarketHandler(engine)
	tradingHandler := handlers.NewTradingHandler(tradingService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	marketRoutes := v1.Group("/market")
	marketRoutes.GET("", marketHandler.GetState)
	marketRoutes.GET("/instruments", marketHandler.GetInstruments)
	marketRoutes.GET("/news", marketHandler.GetNews)

	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth())

	protected.GET("/profile", authHandler.GetProfile)

	balance := protected.Group("/balance")
	balance.GET("", ledgerHandler.GetBalance)
	balance.POST("/deposit", ledgerHandler.Deposit)
	balance.POST("/withdraw", ledgerHandler.Withdraw)

	trade := protected.Group("/trade")
	trade.POST("/buy", tradingHandler.Buy)
	trade.POST("/sell", tradingHandler.Sell)
	trade.GET("/history", tradingHandler.GetHistory)

	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.Get)
	portfolio.GET("/valuation", portfolioHandler.GetValuation)
	portfolio.GET("/valuations", portfolioHandler.GetValuationHistory)

	admin := protected.Group("/")
	admin.Use(middleware.RequireAdmin())
	admin.POST("/market/news/regenerate", marketHandler.RegenerateNews)

	return &testApp{DB: db, Engine: engine, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"display_name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// fundBank seeds the user's bank balance directly. In production money
// arrives through the wallet from the surrounding platform.
func (app *testApp) fundBank(t *testing.T, userID string, amount float64) {
	t.Helper()
	if err := app.DB.Create(&models.Balance{UserID: userID, Bank: amount}).Error; err != nil {
		t.Fatalf("failed to fund balance: %v", err)
	}
}
