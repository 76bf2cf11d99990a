package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type Config struct {
	Port                   string
	GinMode                string
	LogLevel               string
	BackendURL             string
	BackendTimeout         time.Duration
	PublicOrigin           string
	SessionDriver          string
	SessionDSN             string
	POSRefreshInterval     time.Duration
	KitchenRefreshInterval time.Duration
	CartIdleTTL            time.Duration
	CartSweepInterval      time.Duration
	RateLimitRPS           float64
	CORSOrigin             string
	CurrencySymbol         string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf("no .env file loaded: %v", err)
	}

	return &Config{
		Port:                   getEnv("PORT", "8080"),
		GinMode:                getEnv("GIN_MODE", "debug"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		BackendURL:             getEnv("BACKEND_URL", "https://komsyte-restro-backend.onrender.com"),
		BackendTimeout:         getDuration("BACKEND_TIMEOUT", 15*time.Second),
		PublicOrigin:           getEnv("PUBLIC_ORIGIN", "http://localhost:3000"),
		SessionDriver:          getEnv("SESSION_DRIVER", "sqlite"),
		SessionDSN:             getEnv("SESSION_DSN", "pos_session.db"),
		POSRefreshInterval:     getDuration("POS_REFRESH_INTERVAL", 30*time.Second),
		KitchenRefreshInterval: getDuration("KITCHEN_REFRESH_INTERVAL", 15*time.Second),
		CartIdleTTL:            getDuration("CART_IDLE_TTL", 2*time.Hour),
		CartSweepInterval:      getDuration("CART_SWEEP_INTERVAL", 5*time.Minute),
		RateLimitRPS:           getFloat("RATE_LIMIT_RPS", 20),
		CORSOrigin:             getEnv("CORS_ORIGIN", "*"),
		CurrencySymbol:         getEnv("CURRENCY_SYMBOL", "Rs."),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		utils.ErrorLogger.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		utils.ErrorLogger.Printf("Warning: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}
