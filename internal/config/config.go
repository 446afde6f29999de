package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Market session window, hours in UTC. Trading and price ticks only
	// happen while the wall-clock hour is in [OpenHour, CloseHour).
	MarketOpenHour  int
	MarketCloseHour int

	// Scheduler intervals. The clock is evaluated more often than prices
	// tick so session transitions land close to the configured hours.
	TickInterval  time.Duration
	ClockInterval time.Duration

	// Trading fees and limits.
	StockFeeRate float64
	GoldFeeRate  float64
	GoldMinLot   float64

	// MarketSeed seeds the simulation RNG. Zero means seed from the
	// current time; fixed values give reproducible price paths.
	MarketSeed int64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		MarketOpenHour:  getEnvInt("MARKET_OPEN_HOUR", 9),
		MarketCloseHour: getEnvInt("MARKET_CLOSE_HOUR", 17),

		TickInterval:  getEnvDuration("MARKET_TICK_INTERVAL", 5*time.Minute),
		ClockInterval: getEnvDuration("MARKET_CLOCK_INTERVAL", time.Minute),

		StockFeeRate: getEnvFloat("STOCK_FEE_RATE", 0.005),
		GoldFeeRate:  getEnvFloat("GOLD_FEE_RATE", 0.01),
		GoldMinLot:   getEnvFloat("GOLD_MIN_LOT", 0.1),

		MarketSeed: int64(getEnvInt("MARKET_SEED", 0)),
	}

	if config.MarketOpenHour < 0 || config.MarketCloseHour > 24 ||
		config.MarketOpenHour >= config.MarketCloseHour {
		return nil, fmt.Errorf("invalid market window: open=%d close=%d",
			config.MarketOpenHour, config.MarketCloseHour)
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', using default %d\n", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', using default %g\n", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', using default %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
