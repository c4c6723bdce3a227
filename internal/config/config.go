package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all configuration for the application
type Config struct {
	Store   StoreConfig
	Server  ServerConfig
	Catalog CatalogConfig
	Ranking RankingConfig
	Agent   AgentConfig
	LLM     LLMConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

// StoreConfig holds document store configuration
type StoreConfig struct {
	Driver             string // postgres or memory
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	AutoMigrate        bool
	SeedFile           string // JSON seed loaded at startup
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// CatalogConfig holds lookup limits
type CatalogConfig struct {
	CandidateLimit  int
	MaxProducts     int
	MaxGuides       int
	FallbackResults int
}

// RankingConfig holds product match weights
type RankingConfig struct {
	WeightMaintenance float64
	WeightSunlight    float64
	WeightCategory    float64
	WeightType        float64
	WeightPetSafe     float64
	Bonus             float64
}

// AgentConfig holds tool-calling loop settings
type AgentConfig struct {
	MaxIterations int
}

// LLMConfig holds OpenAI-compatible chat completion configuration
type LLMConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	TopP        float64
	MaxTokens   int
	ExtraBody   string // JSON string merged into the request as extra_body
	Timeout     int
	Enabled     bool
}

// RedisConfig holds cache configuration
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	Prefix      string
	CategoryTTL int // seconds
	Enabled     bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Store: StoreConfig{
			Driver:             strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "plant_catalog"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
			AutoMigrate:        getEnvAsBool("STORE_AUTO_MIGRATE", true),
			SeedFile:           getEnv("STORE_SEED_FILE", ""),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost,http://localhost:3000,http://localhost:5173"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization,X-Request-ID"),
		},
		Catalog: CatalogConfig{
			CandidateLimit:  getEnvAsInt("CATALOG_CANDIDATE_LIMIT", 50),
			MaxProducts:     getEnvAsInt("CATALOG_MAX_PRODUCTS", 8),
			MaxGuides:       getEnvAsInt("CATALOG_MAX_GUIDES", 3),
			FallbackResults: getEnvAsInt("CATALOG_FALLBACK_RESULTS", 5),
		},
		Ranking: RankingConfig{
			WeightMaintenance: getEnvAsFloat("RANK_WEIGHT_MAINTENANCE", 3.0),
			WeightSunlight:    getEnvAsFloat("RANK_WEIGHT_SUNLIGHT", 3.0),
			WeightCategory:    getEnvAsFloat("RANK_WEIGHT_CATEGORY", 2.0),
			WeightType:        getEnvAsFloat("RANK_WEIGHT_TYPE", 2.0),
			WeightPetSafe:     getEnvAsFloat("RANK_WEIGHT_PET_SAFE", 1.0),
			Bonus:             getEnvAsFloat("RANK_BONUS", 0.5),
		},
		Agent: AgentConfig{
			MaxIterations: getEnvAsInt("AGENT_MAX_ITERATIONS", 6),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("LLM_API_KEY", getEnv("GEMINI_API_KEY", "")),
			APIBase:     strings.TrimRight(getEnv("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"), "/"),
			ChatModel:   getEnv("LLM_CHAT_MODEL", "gemini-1.5-flash"),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			TopP:        getEnvAsFloat("LLM_TOP_P", 0),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 1200),
			ExtraBody:   getEnv("LLM_EXTRA_BODY", ""),
			Timeout:     getEnvAsInt("LLM_TIMEOUT", 60),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			Prefix:      getEnv("REDIS_PREFIX", "plantchat:"),
			CategoryTTL: getEnvAsInt("REDIS_CATEGORY_TTL", 300),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
	cfg.LLM.Enabled = cfg.LLM.APIKey != ""
	cfg.Redis.Enabled = cfg.Redis.Addr != ""

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want postgres or memory)", c.Store.Driver)
	}
	if c.Agent.MaxIterations <= 0 {
		return fmt.Errorf("AGENT_MAX_ITERATIONS must be positive, got %d", c.Agent.MaxIterations)
	}
	if c.Catalog.MaxProducts <= 0 || c.Catalog.MaxGuides <= 0 || c.Catalog.CandidateLimit <= 0 {
		return fmt.Errorf("catalog limits must be positive")
	}
	if c.Catalog.FallbackResults < 1 {
		return fmt.Errorf("CATALOG_FALLBACK_RESULTS must be at least 1, got %d", c.Catalog.FallbackResults)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.Store.DSN != "" {
		return c.Store.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Store.Host,
		c.Store.Port,
		c.Store.User,
		c.Store.Password,
		c.Store.Database,
		c.Store.SSLMode,
	)
}

// SplitList splits a comma separated config value, dropping blanks
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Warn().Str("key", key).Float64("default", defaultValue).Msg("invalid float value, using default")
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
		log.Warn().Str("key", key).Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}
