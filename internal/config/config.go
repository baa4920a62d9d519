package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Gemini   GeminiConfig
	Geocoder GeocoderConfig
	Pipeline PipelineConfig
	Queue    QueueConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for raw uploads.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// GeminiConfig holds settings for the Gemini generation client.
type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// GeocoderConfig holds settings for the Nominatim geocoding client.
type GeocoderConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	UserAgent   string `mapstructure:"user_agent"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// PipelineConfig holds per-run pipeline settings.
type PipelineConfig struct {
	// SettleDelay is the pause inserted after extraction persistence to
	// respect external provider rate limits.
	SettleDelay   time.Duration `mapstructure:"settle_delay"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	RetryBase     time.Duration `mapstructure:"retry_base"`
	RetryCap      time.Duration `mapstructure:"retry_cap"`
	FactorVersion string        `mapstructure:"factor_version"`
}

// QueueConfig holds processing queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the AEROCARBON_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AEROCARBON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "aerocarbon")
	v.SetDefault("db.password", "aerocarbon_secret")
	v.SetDefault("db.name", "aerocarbon_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "aerocarbon-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.max_file_size_mb", 25)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout_secs", 120)

	// Geocoder defaults
	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "aerocarbon_carbon_engine")
	v.SetDefault("geocoder.timeout_secs", 10)

	// Pipeline defaults
	v.SetDefault("pipeline.settle_delay", "1s")
	v.SetDefault("pipeline.max_attempts", 3)
	v.SetDefault("pipeline.retry_base", "2s")
	v.SetDefault("pipeline.retry_cap", "10s")
	v.SetDefault("pipeline.factor_version", "v1.0")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.concurrency", 4)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	for key, env := range map[string]string{
		"server.port":              "AEROCARBON_SERVER_PORT",
		"server.read_timeout":      "AEROCARBON_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "AEROCARBON_SERVER_WRITE_TIMEOUT",
		"server.environment":       "AEROCARBON_SERVER_ENVIRONMENT",
		"db.host":                  "AEROCARBON_DB_HOST",
		"db.port":                  "AEROCARBON_DB_PORT",
		"db.user":                  "AEROCARBON_DB_USER",
		"db.password":              "AEROCARBON_DB_PASSWORD",
		"db.name":                  "AEROCARBON_DB_NAME",
		"db.sslmode":               "AEROCARBON_DB_SSLMODE",
		"db.max_open":              "AEROCARBON_DB_MAX_OPEN",
		"db.max_idle":              "AEROCARBON_DB_MAX_IDLE",
		"s3.region":                "AEROCARBON_S3_REGION",
		"s3.bucket":                "AEROCARBON_S3_BUCKET",
		"s3.endpoint":              "AEROCARBON_S3_ENDPOINT",
		"s3.access_key":            "AEROCARBON_S3_ACCESS_KEY",
		"s3.secret_key":            "AEROCARBON_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "AEROCARBON_S3_MAX_FILE_SIZE_MB",
		"gemini.api_key":           "AEROCARBON_GEMINI_API_KEY",
		"gemini.model":             "AEROCARBON_GEMINI_MODEL",
		"gemini.timeout_secs":      "AEROCARBON_GEMINI_TIMEOUT_SECS",
		"geocoder.base_url":        "AEROCARBON_GEOCODER_BASE_URL",
		"geocoder.user_agent":      "AEROCARBON_GEOCODER_USER_AGENT",
		"geocoder.timeout_secs":    "AEROCARBON_GEOCODER_TIMEOUT_SECS",
		"pipeline.settle_delay":    "AEROCARBON_PIPELINE_SETTLE_DELAY",
		"pipeline.max_attempts":    "AEROCARBON_PIPELINE_MAX_ATTEMPTS",
		"pipeline.retry_base":      "AEROCARBON_PIPELINE_RETRY_BASE",
		"pipeline.retry_cap":       "AEROCARBON_PIPELINE_RETRY_CAP",
		"pipeline.factor_version":  "AEROCARBON_PIPELINE_FACTOR_VERSION",
		"queue.poll_interval_secs": "AEROCARBON_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":        "AEROCARBON_QUEUE_CONCURRENCY",
		"cors.allowed_origins":     "AEROCARBON_CORS_ALLOWED_ORIGINS",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Comma-separated origins arrive as a single string from env
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	return &cfg, nil
}
