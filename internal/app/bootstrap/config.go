package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the escrow service.
// It merges file defaults and environment overrides to support both local
// and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string

	KafkaBrokers []string
	KafkaTopic   string

	GatewayBaseURL   string
	GatewayAPIKey    string
	GatewayTimeout   time.Duration
	DirectoryBaseURL string
	DirectoryTimeout time.Duration

	HoldDays         int
	MaxRetryAttempts int
	MaxAmountMinor   int64
	MirrorCacheTTL   time.Duration

	SweepInterval  time.Duration
	SweepBatchSize int

	MaxDBConns         int32
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxRetries   int
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL  string   `yaml:"postgres_url"`
		RedisURL     string   `yaml:"redis_url"`
		KafkaBrokers []string `yaml:"kafka_brokers"`
		KafkaTopic   string   `yaml:"kafka_topic"`
	} `yaml:"dependencies"`
	Gateway struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"gateway"`
	Directory struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"directory"`
	Escrow struct {
		HoldDays         int   `yaml:"hold_days"`
		MaxRetryAttempts int   `yaml:"max_retry_attempts"`
		MaxAmountMinor   int64 `yaml:"max_amount_minor"`
	} `yaml:"escrow"`
	Scheduler struct {
		SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`
		SweepBatchSize       int `yaml:"sweep_batch_size"`
	} `yaml:"scheduler"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:          "escrow-ledger-service",
		HTTPPort:           8080,
		GRPCPort:           9090,
		KafkaTopic:         "escrow.events",
		GatewayTimeout:     10 * time.Second,
		DirectoryTimeout:   5 * time.Second,
		HoldDays:           5,
		MaxRetryAttempts:   3,
		MaxAmountMinor:     1_000_000,
		MirrorCacheTTL:     30 * time.Second,
		SweepInterval:      time.Hour,
		SweepBatchSize:     100,
		MaxDBConns:         20,
		OutboxPollInterval: 2 * time.Second,
		OutboxBatchSize:    100,
		OutboxMaxRetries:   5,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = f.Dependencies.KafkaBrokers
		}
		if f.Dependencies.KafkaTopic != "" {
			cfg.KafkaTopic = f.Dependencies.KafkaTopic
		}
		if f.Gateway.BaseURL != "" {
			cfg.GatewayBaseURL = f.Gateway.BaseURL
		}
		if f.Gateway.APIKey != "" {
			cfg.GatewayAPIKey = f.Gateway.APIKey
		}
		if f.Gateway.TimeoutSeconds > 0 {
			cfg.GatewayTimeout = time.Duration(f.Gateway.TimeoutSeconds) * time.Second
		}
		if f.Directory.BaseURL != "" {
			cfg.DirectoryBaseURL = f.Directory.BaseURL
		}
		if f.Directory.TimeoutSeconds > 0 {
			cfg.DirectoryTimeout = time.Duration(f.Directory.TimeoutSeconds) * time.Second
		}
		if f.Escrow.HoldDays > 0 {
			cfg.HoldDays = f.Escrow.HoldDays
		}
		if f.Escrow.MaxRetryAttempts > 0 {
			cfg.MaxRetryAttempts = f.Escrow.MaxRetryAttempts
		}
		if f.Escrow.MaxAmountMinor > 0 {
			cfg.MaxAmountMinor = f.Escrow.MaxAmountMinor
		}
		if f.Scheduler.SweepIntervalSeconds > 0 {
			cfg.SweepInterval = time.Duration(f.Scheduler.SweepIntervalSeconds) * time.Second
		}
		if f.Scheduler.SweepBatchSize > 0 {
			cfg.SweepBatchSize = f.Scheduler.SweepBatchSize
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopic = envOrDefault("KAFKA_TOPIC", cfg.KafkaTopic)
	cfg.GatewayBaseURL = envOrDefault("GATEWAY_BASE_URL", cfg.GatewayBaseURL)
	cfg.GatewayAPIKey = envOrDefault("GATEWAY_API_KEY", cfg.GatewayAPIKey)
	cfg.DirectoryBaseURL = envOrDefault("DIRECTORY_BASE_URL", cfg.DirectoryBaseURL)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.HoldDays = envInt("ESCROW_HOLD_DAYS", cfg.HoldDays)
	cfg.MaxRetryAttempts = envInt("ESCROW_MAX_RETRY_ATTEMPTS", cfg.MaxRetryAttempts)
	cfg.MaxAmountMinor = int64(envInt("ESCROW_MAX_AMOUNT_MINOR", int(cfg.MaxAmountMinor)))
	cfg.MirrorCacheTTL = time.Duration(envInt("MIRROR_CACHE_TTL_SECONDS", int(cfg.MirrorCacheTTL.Seconds()))) * time.Second

	cfg.SweepInterval = time.Duration(envInt("SWEEP_INTERVAL_SECONDS", int(cfg.SweepInterval.Seconds()))) * time.Second
	cfg.SweepBatchSize = envInt("SWEEP_BATCH_SIZE", cfg.SweepBatchSize)

	cfg.GatewayTimeout = time.Duration(envInt("GATEWAY_TIMEOUT_SECONDS", int(cfg.GatewayTimeout.Seconds()))) * time.Second
	cfg.DirectoryTimeout = time.Duration(envInt("DIRECTORY_TIMEOUT_SECONDS", int(cfg.DirectoryTimeout.Seconds()))) * time.Second

	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.OutboxMaxRetries = envInt("OUTBOX_MAX_RETRIES", cfg.OutboxMaxRetries)

	if cfg.GatewayBaseURL == "" {
		return Config{}, fmt.Errorf("missing GATEWAY_BASE_URL")
	}
	if cfg.DirectoryBaseURL == "" {
		return Config{}, fmt.Errorf("missing DIRECTORY_BASE_URL")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envCSV parses comma-separated env vars and removes empty segments.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return fallback
	}
	return parts
}
