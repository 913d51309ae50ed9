package lingobridge

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the environment-supplied relay configuration.
type Config struct {
	BotToken string // Transport credential (required)
	Debug    bool   // Verbose logging

	PivotLanguage       string        // Common language forward translations target
	ConfidenceThreshold float64       // Minimum detection confidence
	CacheMaxSize        int           // Relay cache capacity (entries)
	CacheTTL            time.Duration // Relay cache entry lifetime
	RetentionDays       int           // Store retention window for startup cleanup

	DatabasePath string // SQLite file for the relay store

	TranslationModel  string // LLM used for translation
	APIKey            string // Translation API key
	APIBaseURL        string // OpenAI-compatible endpoint (empty = provider default)
	RequestsPerMinute int    // Translation API rate limit (0 = no limiting)

	RedisURL string // When set, the relay cache is Redis-backed

	MongoURI        string // When set, relayed messages are archived to MongoDB
	MongoDatabase   string
	MongoCollection string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one is present. A missing bot token is the one fatal condition:
// without it the relay cannot start.
func LoadConfig() (*Config, error) {
	// .env is a convenience for local runs; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:            os.Getenv("TELEGRAM_BOT_TOKEN"),
		Debug:               envBool("DEBUG_MODE", false),
		PivotLanguage:       envString("PIVOT_LANGUAGE", DefaultPivotLanguage),
		ConfidenceThreshold: envFloat("LANG_CONFIDENCE_THRESHOLD", DefaultConfidenceThreshold),
		CacheMaxSize:        envInt("CACHE_MAX_SIZE", 100),
		CacheTTL:            time.Duration(envInt("CACHE_EXPIRATION_SECONDS", 1800)) * time.Second,
		RetentionDays:       envInt("DB_CLEANUP_DAYS", 7),
		DatabasePath:        envString("DB_PATH", "data/relay.db"),
		TranslationModel:    envString("TRANSLATION_LLM", "llama-3.3-70b-versatile"),
		APIKey:              os.Getenv("GROQ_API_KEY"),
		APIBaseURL:          os.Getenv("GROQ_BASE_URL"),
		RequestsPerMinute:   envInt("TRANSLATION_RPM", 0),
		RedisURL:            os.Getenv("REDIS_URL"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoDatabase:       envString("MONGODB_DB_NAME", "lingobridge"),
		MongoCollection:     envString("MONGODB_COLLECTION_NAME", "messages"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN must be set")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY must be set")
	}

	cfg.PivotLanguage = NormalizeLanguage(cfg.PivotLanguage)

	return cfg, nil
}

// Retention converts the retention window to a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
