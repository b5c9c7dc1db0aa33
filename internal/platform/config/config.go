package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string
	MasterDataFile string // Seed for the memory driver

	JWTSecret string
	JWTIssuer string

	// Redis backs distributed batch locks and the rate limit store when set.
	RedisURL   string
	LockExpiry time.Duration
	LockTries  int

	// AMQP receives a copy of every audit event when set.
	AMQPURL    string
	AuditQueue string

	RolePolicyFile     string
	DefaultCurrency    string
	ReferencePrefix    string
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("MASTER_DATA_FILE", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "eft-batch-service")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOCK_EXPIRY", "10s")
	viper.SetDefault("LOCK_TRIES", 32)
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AUDIT_QUEUE", "eft.audit")
	viper.SetDefault("ROLE_POLICY_FILE", "")
	viper.SetDefault("DEFAULT_CURRENCY", "MWK")
	viper.SetDefault("REFERENCE_PREFIX", "CRWB")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   viper.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:   strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		MigrationsPath:  viper.GetString("MIGRATIONS_PATH"),
		MasterDataFile:  viper.GetString("MASTER_DATA_FILE"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		JWTIssuer:       viper.GetString("JWT_ISSUER"),
		RedisURL:        viper.GetString("REDIS_URL"),
		LockTries:       viper.GetInt("LOCK_TRIES"),
		AMQPURL:         viper.GetString("AMQP_URL"),
		AuditQueue:      viper.GetString("AUDIT_QUEUE"),
		RolePolicyFile:  viper.GetString("ROLE_POLICY_FILE"),
		DefaultCurrency: strings.ToUpper(viper.GetString("DEFAULT_CURRENCY")),
		ReferencePrefix: viper.GetString("REFERENCE_PREFIX"),
		RateLimit:       viper.GetString("RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %s", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER is memory. Batches are lost on restart.")
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	lockExpiryStr := viper.GetString("LOCK_EXPIRY")
	lockExpiry, err := time.ParseDuration(lockExpiryStr)
	if err != nil || lockExpiry <= 0 {
		lockExpiry = 10 * time.Second
		log.Printf("Warning: Invalid value for LOCK_EXPIRY ('%s'). Defaulting to %s.\n", lockExpiryStr, lockExpiry)
	}
	cfg.LockExpiry = lockExpiry
	if cfg.LockTries <= 0 {
		cfg.LockTries = 32
	}

	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("DEFAULT_CURRENCY must be a 3 letter code, got %q", cfg.DefaultCurrency)
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
