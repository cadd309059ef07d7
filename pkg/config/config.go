package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Market data
	Finnhub   FinnhubConfig
	Yahoo     YahooConfig
	Benchmark string

	// Ranking
	Universe     []string
	TopK         int
	LookbackDays int
	RankWorkers  int

	// Telegram front end
	Telegram TelegramConfig

	// Redis (notification dedup memory)
	Redis  RedisConfig
	Memory MemoryConfig

	// Strategy thresholds (optional YAML override)
	StrategyFile string

	// Logging
	LogLevel  string
	LogFormat string
}

// FinnhubConfig holds the primary data source configuration.
type FinnhubConfig struct {
	Token   string
	BaseURL string
}

// YahooConfig holds the fallback data source configuration.
type YahooConfig struct {
	BaseURL string
}

// TelegramConfig holds Telegram Bot API configuration.
type TelegramConfig struct {
	BotToken string
	ChatID   string // optional default chat for scheduled pushes
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// MemoryConfig controls the notification dedup memory.
type MemoryConfig struct {
	Namespace string
	TTL       time.Duration
}

// defaultUniverse is the scan list used when UNIVERSE_TICKERS is unset.
var defaultUniverse = []string{
	"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "META", "TSLA", "AVGO", "AMD", "NFLX",
	"ADBE", "COST", "PEP", "ORCL",
	"SPY", "QQQ", "IWM", "VTI", "VOO", "EFA", "EEM",
	"ASML", "SAP", "NVO",
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Finnhub: FinnhubConfig{
			Token:   getEnv("FINNHUB_API_KEY", ""),
			BaseURL: getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		},
		Yahoo: YahooConfig{
			BaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		},
		Benchmark: getEnv("BENCHMARK", "SPY"),

		Universe:     getEnvAsList("UNIVERSE_TICKERS", defaultUniverse),
		TopK:         getEnvAsInt("TOP_K", 4),
		LookbackDays: getEnvAsInt("LOOKBACK_DAYS", 420),
		RankWorkers:  getEnvAsInt("RANK_WORKERS", 4),

		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		Memory: MemoryConfig{
			Namespace: getEnv("MEMORY_NAMESPACE", "pickmem"),
			TTL:       time.Duration(getEnvAsInt("MEMORY_TTL_DAYS", 14)) * 24 * time.Hour,
		},

		StrategyFile: getEnv("STRATEGY_FILE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if len(c.Universe) == 0 {
		return fmt.Errorf("UNIVERSE_TICKERS must not be empty")
	}

	if c.TopK < 1 {
		return fmt.Errorf("TOP_K must be at least 1")
	}

	if c.RankWorkers < 1 {
		return fmt.Errorf("RANK_WORKERS must be at least 1")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
