package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	Port        uint16
	DatabaseUrl string

	// CartStoragePath is the directory for the file-backed cart store.
	// Empty means the cart lives only in memory.
	CartStoragePath string

	// CouponsFile optionally points at a YAML/TOML/JSON coupon registry.
	// Empty means the built-in demo registry.
	CouponsFile string

	// CORSOrigins are the allowed origins for the storefront SPA.
	CORSOrigins []string

	Stripe   StripeConfig
	NATS     NATSConfig
	Shipping ShippingConfig
	Tax      TaxConfig
}

type StripeConfig struct {
	SecretKey      string
	PublishableKey string
}

// Configured reports whether online payments can be taken.
func (c StripeConfig) Configured() bool {
	return c.SecretKey != ""
}

type NATSConfig struct {
	URL string
}

// ShippingConfig holds the threshold shipping rule: orders at or above
// FreeThreshold (or empty orders) ship free, everything else pays Fee.
type ShippingConfig struct {
	FreeThreshold int64
	Fee           int64
}

// TaxConfig holds the inclusive tax rate used for the informational
// "tax included" figure.
type TaxConfig struct {
	Rate float64
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:             getEnv("ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnvInt("PORT", 3000),
		DatabaseUrl:     getEnv("DATABASE_URL", ""),
		CartStoragePath: getEnv("CART_STORAGE_PATH", "./data/cart"),
		CouponsFile:     getEnv("COUPONS_FILE", ""),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "")),
		Stripe: StripeConfig{
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Shipping: ShippingConfig{
			FreeThreshold: getEnvInt64("SHIPPING_FREE_THRESHOLD", 75000),
			Fee:           getEnvInt64("SHIPPING_FEE", 999),
		},
		Tax: TaxConfig{
			Rate: getEnvFloat("TAX_RATE", 0.18),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Shipping.FreeThreshold < 0 || cfg.Shipping.Fee < 0 {
		return nil, fmt.Errorf("shipping threshold and fee must be non-negative")
	}
	if cfg.Tax.Rate < 0 || cfg.Tax.Rate >= 1 {
		return nil, fmt.Errorf("TAX_RATE must be in [0, 1)")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		var intValue int64
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
