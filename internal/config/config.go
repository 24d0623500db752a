package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Upstream swap API settings
	JupiterBasePath string
	HTTPTimeout     time.Duration

	// Proxy server settings
	APIAddr   string
	APIKey    string
	DevMode   bool
	RateLimit float64
	RateBurst int

	// Redis settings (quote history, optional)
	RedisAddr string
}

func Load() *Config {
	return &Config{
		// Upstream
		JupiterBasePath: getEnv("JUPITER_BASE_PATH", "https://quote-api.jup.ag/v6"),
		HTTPTimeout:     getDurationEnv("HTTP_TIMEOUT", 30*time.Second),

		// Proxy
		APIAddr:   getEnv("API_ADDR", ":8090"),
		APIKey:    getEnv("API_KEY", ""),
		DevMode:   getBoolEnv("DEV_MODE", false),
		RateLimit: getFloatEnv("SWAP_RATE_LIMIT", 1),
		RateBurst: getIntEnv("SWAP_RATE_BURST", 5),

		// Redis
		RedisAddr: getEnv("REDIS_ADDR", ""),
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.JupiterBasePath)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("JUPITER_BASE_PATH is not a valid URL: %q", c.JupiterBasePath)
	}
	if c.APIAddr == "" {
		return fmt.Errorf("API_ADDR must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.RateLimit <= 0 || c.RateBurst < 1 {
		return fmt.Errorf("SWAP_RATE_LIMIT and SWAP_RATE_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getFloatEnv(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
