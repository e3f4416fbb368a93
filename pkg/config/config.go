package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Assembly AssemblyConfig
	Groq     GroqConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
	// ConnMaxLifetime bounds how long a pooled connection is reused.
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds audio object storage configuration
type StorageConfig struct {
	Type            string // "minio" or "s3"
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// AssemblyConfig holds AssemblyAI configuration
type AssemblyConfig struct {
	APIKey        string
	WebhookURL    string
	WebhookSecret string
}

// GroqConfig holds Groq LLM configuration. The extractor falls back to
// keyword heuristics when the key is empty.
type GroqConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// PipelineConfig tunes the voice pipeline workers and limits. Parsed with
// envconfig so every knob maps 1:1 onto a PIPELINE_* variable.
type PipelineConfig struct {
	MaxUploadBytes     int64         `envconfig:"MAX_UPLOAD_BYTES" default:"26214400"`
	MaxDurationSeconds float64       `envconfig:"MAX_DURATION_SECONDS" default:"300"`
	TranscribeWorkers  int           `envconfig:"TRANSCRIBE_WORKERS" default:"4"`
	JobTimeout         time.Duration `envconfig:"JOB_TIMEOUT" default:"5m"`
	PreviewTTL         time.Duration `envconfig:"PREVIEW_TTL" default:"15m"`
	SweepInterval      time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	DefaultLanguage    string        `envconfig:"DEFAULT_LANGUAGE" default:"fr"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "foyer_voice"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Type:            getEnv("STORAGE_TYPE", "minio"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "foyer-voice-audio"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Assembly: AssemblyConfig{
			APIKey:        getEnv("ASSEMBLYAI_API_KEY", ""),
			WebhookURL:    getEnv("ASSEMBLYAI_WEBHOOK_URL", ""),
			WebhookSecret: getEnv("ASSEMBLYAI_WEBHOOK_SECRET", ""),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			Model:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			Timeout: getEnvAsDuration("GROQ_TIMEOUT", "10s"),
		},
	}

	if err := envconfig.Process("PIPELINE", &config.Pipeline); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Assembly.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
	}
	if c.Pipeline.MaxUploadBytes <= 0 {
		return fmt.Errorf("PIPELINE_MAX_UPLOAD_BYTES must be positive")
	}
	if c.Pipeline.TranscribeWorkers <= 0 {
		return fmt.Errorf("PIPELINE_TRANSCRIBE_WORKERS must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
