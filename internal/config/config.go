package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pcforge/builder-backend/internal/entity"
	pkgRetry "github.com/pcforge/builder-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	CatalogConnectorCfg CatalogConnectorConfig `envPrefix:"CATALOG_"`
	LLMCfg              LLMConfig              `envPrefix:"LLM_"`

	// Catalog cache configuration
	CacheCfg CacheConfig `envPrefix:"CACHE_"`

	// Chat configuration
	ChatCfg ChatConfig `envPrefix:"CHAT_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Budget fraction table (loaded from JSON file)
	BudgetFractions map[entity.Category]entity.BudgetFraction

	// Curated storage component identifiers (loaded from JSON file)
	StorageComponents []string

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Environment (set from flag, not from env var)
	Environment string
}

// CatalogConnectorConfig configures the external parts-catalog client.
type CatalogConnectorConfig struct {
	HTTPClientConfig
	SearchEndpoint string               `env:"SEARCH_ENDPOINT" envDefault:"/produit/byPaginationNew"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// LLMConfig configures the text-completion provider.
type LLMConfig struct {
	APIKey         string        `env:"API_KEY"`
	Model          string        `env:"MODEL" envDefault:"gpt-3.5-turbo"`
	RequestTimeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

// CacheConfig configures the in-process front of the catalog cache.
type CacheConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"10m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"15m"`
}

// ChatConfig configures the conversational reply prompt.
type ChatConfig struct {
	PromptHeader  string `env:"PROMPT_HEADER" envDefault:"You are ForgeBot, a friendly PC-building companion. Answer as the assistant in the conversation below."`
	AssistantName string `env:"ASSISTANT_NAME" envDefault:"ForgeBot"`
	HistoryLimit  int    `env:"HISTORY_LIMIT" envDefault:"20"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// budgetFractionsFile represents the structure of budget_fractions.json
type budgetFractionsFile struct {
	Fractions map[entity.Category]entity.BudgetFraction `json:"fractions"`
}

// storageComponentsFile represents the structure of storage_components.json
type storageComponentsFile struct {
	Liens []string `json:"liens"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Load the budget fraction table from JSON file
	if err := loadBudgetFractions(cfg); err != nil {
		return nil, fmt.Errorf("load budget fractions: %w", err)
	}

	// Load the curated storage allow-list from JSON file
	if err := loadStorageComponents(cfg); err != nil {
		return nil, fmt.Errorf("load storage components: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate chat configuration
	if cfg.ChatCfg.HistoryLimit < 1 || cfg.ChatCfg.HistoryLimit > 200 {
		errors = append(errors, fmt.Sprintf("CHAT_HISTORY_LIMIT must be between 1 and 200, got %d", cfg.ChatCfg.HistoryLimit))
	}

	// The real LLM provider needs a key; mocks don't
	if !cfg.EnableMocks && cfg.LLMCfg.APIKey == "" {
		errors = append(errors, "LLM_API_KEY is required when ENABLE_MOCKS is false")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errors[0])
	}

	return nil
}

// defaultBudgetFractions is the canonical fraction table. The CPU pair keeps
// the historical precision so a 3000 budget yields the [455.1, 962.7] range.
var defaultBudgetFractions = map[entity.Category]entity.BudgetFraction{
	entity.CategoryCPU:         {Min: 0.1517, Max: 0.3209},
	entity.CategoryMotherboard: {Min: 0.08, Max: 0.15},
	entity.CategoryGPU:         {Min: 0.15, Max: 0.32},
	entity.CategoryRAM:         {Min: 0.05, Max: 0.15},
	entity.CategoryStorage:     {Min: 0.03, Max: 0.25},
	entity.CategoryPSU:         {Min: 0.03, Max: 0.15},
	entity.CategoryCase:        {Min: 0.03, Max: 0.10},
	entity.CategoryCooling:     {Min: 0.05, Max: 0.12},
}

// defaultStorageComponents is the fallback curated storage list.
var defaultStorageComponents = []string{
	"msi-spatium-m371-nvme-m2-500gb",
	"samsung-980-nvme-m2-1tb",
	"kingston-nv2-nvme-m2-500gb",
	"wd-blue-sn570-nvme-m2-1tb",
}

func loadBudgetFractions(cfg *Config) error {
	configDir := filepath.Join("internal", "config", "budget_fractions.json")

	// Check if file exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		fmt.Printf("Warning: budget fractions file not found at %s, using default table\n", configDir)
		cfg.BudgetFractions = defaultBudgetFractions
		return nil
	}

	data, err := os.ReadFile(configDir)
	if err != nil {
		return fmt.Errorf("read budget fractions file: %w", err)
	}

	var fileData budgetFractionsFile
	if err := json.Unmarshal(data, &fileData); err != nil {
		return fmt.Errorf("parse budget fractions JSON: %w", err)
	}

	if len(fileData.Fractions) == 0 {
		return fmt.Errorf("budget fractions file contains no entries: %s", configDir)
	}

	// Every category must have a sane row; a partial table is a config error.
	for _, cat := range entity.AllCategories {
		fr, ok := fileData.Fractions[cat]
		if !ok {
			return fmt.Errorf("budget fractions file is missing category %q", cat)
		}
		if fr.Min < 0 || fr.Max < fr.Min {
			return fmt.Errorf("budget fractions for %q are invalid: min=%v max=%v", cat, fr.Min, fr.Max)
		}
	}

	cfg.BudgetFractions = fileData.Fractions

	fmt.Printf("Loaded %d budget fraction rows from %s\n", len(cfg.BudgetFractions), configDir)
	return nil
}

func loadStorageComponents(cfg *Config) error {
	configDir := filepath.Join("internal", "config", "storage_components.json")

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		fmt.Printf("Warning: storage components file not found at %s, using default list\n", configDir)
		cfg.StorageComponents = defaultStorageComponents
		return nil
	}

	data, err := os.ReadFile(configDir)
	if err != nil {
		return fmt.Errorf("read storage components file: %w", err)
	}

	var fileData storageComponentsFile
	if err := json.Unmarshal(data, &fileData); err != nil {
		return fmt.Errorf("parse storage components JSON: %w", err)
	}

	if len(fileData.Liens) == 0 {
		return fmt.Errorf("storage components file contains no liens: %s", configDir)
	}

	cfg.StorageComponents = fileData.Liens

	fmt.Printf("Loaded %d storage components from %s\n", len(cfg.StorageComponents), configDir)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
