package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bourse/internal/config"
	"bourse/internal/database"
	"bourse/internal/handlers"
	"bourse/internal/logger"
	"bourse/internal/market"
	"bourse/internal/middleware"
	"bourse/internal/notify"
	"bourse/internal/services"
	"bourse/internal/validator"

	_ "bourse/internal/docs" // Import swagger docs
)

// @title           Bourse API
// @version         1.0
// @description     Bourse is a simulated market where users trade stocks and gold against an autonomous price engine driven by sentiment and news.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Build the market engine, restoring persisted state when present so
	// a restart does not reset prices mid-session.
	engine, err := market.NewEngine(market.Config{
		OpenHour:  appConfig.MarketOpenHour,
		CloseHour: appConfig.MarketCloseHour,
		Seed:      appConfig.MarketSeed,
	})
	if err != nil {
		return fmt.Errorf("failed to build market engine: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	ledgerService := services.NewLedgerService(db)
	portfolioService := services.NewPortfolioService(db, engine)
	marketStateService := services.NewMarketStateService(db)
	tradingService := services.NewTradingService(db, engine, ledgerService, portfolioService, services.TradingConfig{
		StockFeeRate: appConfig.StockFeeRate,
		GoldFeeRate:  appConfig.GoldFeeRate,
		GoldMinLot:   appConfig.GoldMinLot,
	})

	if snap, err := marketStateService.LoadState(); err != nil {
		log.Warnw("failed to load persisted market state, starting fresh", "error", err)
	} else if snap != nil {
		engine.Restore(*snap)
		log.Infow("restored market state", "open", snap.Open, "instruments", len(snap.Instruments))
	}

	// Announcement hub and simulation scheduler share a shutdown context
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	hub := notify.NewHub()
	go hub.Run(schedulerCtx)

	scheduler := market.NewScheduler(engine, hub, marketStateService, portfolioService,
		appConfig.TickInterval, appConfig.ClockInterval)
	go scheduler.Run(schedulerCtx)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	marketHandler := handlers.NewMarketHandler(engine)
	tradingHandler := handlers.NewTradingHandler(tradingService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	wsHandler := handlers.NewWSHandler(hub)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	validator.Register()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	marketRoutes := v1.Group("/market")
	marketRoutes.GET("", marketHandler.GetState)
	marketRoutes.GET("/instruments", marketHandler.GetInstruments)
	marketRoutes.GET("/news", marketHandler.GetNews)

	v1.GET("/ws", wsHandler.Subscribe)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Ledger routes
	balance := protected.Group("/balance")
	balance.GET("", ledgerHandler.GetBalance)
	balance.POST("/deposit", ledgerHandler.Deposit)
	balance.POST("/withdraw", ledgerHandler.Withdraw)

	// Trading routes
	trade := protected.Group("/trade")
	trade.POST("/buy", tradingHandler.Buy)
	trade.POST("/sell", tradingHandler.Sell)
	trade.GET("/history", tradingHandler.GetHistory)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.Get)
	portfolio.GET("/valuation", portfolioHandler.GetValuation)
	portfolio.GET("/valuations", portfolioHandler.GetValuationHistory)

	// Admin routes
	admin := protected.Group("/")
	admin.Use(middleware.RequireAdmin())
	admin.POST("/market/news/regenerate", marketHandler.RegenerateNews)

	srv := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Starting Bourse backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
