package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"

	UpdateModePath     = "path"
	UpdateModeTaxonomy = "taxonomy"
)

type Config struct {
	AppEnv string
	Port   string

	StorageDriver string
	MongoURI      string
	MongoDatabase string
	Postgres      PostgresConfig

	RedisAddr   string
	KafkaBroker string
	JWTSecret   string

	EmployeeUpdateMode string
	RateLimitRPS       float64
	RateLimitBurst     int
	ConnectRetries     int
}

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		AppEnv:        getenv("APP_ENV", "development"),
		Port:          getenv("PORT", "5000"),
		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", StorageMongo)),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getenv("MONGO_DATABASE", "employees"),
		Postgres: PostgresConfig{
			Host:     getenv("DB_HOST", "localhost"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			Port:     getenv("DB_PORT", "5432"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		EmployeeUpdateMode: strings.ToLower(getenv("EMPLOYEE_UPDATE_MODE", UpdateModePath)),
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "10"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getenv("RATE_LIMIT_BURST", "20")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.ConnectRetries, err = strconv.Atoi(getenv("CONNECT_RETRIES", "5")); err != nil {
		return Config{}, fmt.Errorf("CONNECT_RETRIES: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StorageMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI required when STORAGE_DRIVER=%s", StorageMongo)
		}
	case StoragePostgres:
		if c.Postgres.User == "" || c.Postgres.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.EmployeeUpdateMode {
	case UpdateModePath, UpdateModeTaxonomy:
	default:
		return fmt.Errorf("unsupported EMPLOYEE_UPDATE_MODE %q", c.EmployeeUpdateMode)
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if c.ConnectRetries < 1 {
		return fmt.Errorf("CONNECT_RETRIES must be at least 1")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
