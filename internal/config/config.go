package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Approval  ApprovalConfig  `mapstructure:"approval"`

	// Runtime flags set from the command line, not the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// ApprovalConfig tunes the course approval workflow.
type ApprovalConfig struct {
	// MaxLevel is the last level in the reviewer chain.
	MaxLevel int `mapstructure:"max_level"`
	// Inclusive bounds for reviewer rubric scores.
	MinScore int `mapstructure:"min_score"`
	MaxScore int `mapstructure:"max_score"`
	// AutoApproveMissingReviewer keeps the legacy behavior of silently
	// approving a course when no next-level reviewer can be resolved.
	// When false (the default) the decision fails and the record stays
	// pending until an eligible reviewer exists.
	AutoApproveMissingReviewer bool `mapstructure:"auto_approve_missing_reviewer"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("UNICOURSE")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Approval workflow
	viper.BindEnv("approval.max_level", "APPROVAL_MAX_LEVEL")
	viper.BindEnv("approval.auto_approve_missing_reviewer", "APPROVAL_AUTO_APPROVE_MISSING_REVIEWER")

	viper.SetDefault("approval.max_level", 3)
	viper.SetDefault("approval.min_score", 0)
	viper.SetDefault("approval.max_score", 100)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Approval.MaxLevel < 1 {
		return nil, fmt.Errorf("approval.max_level must be at least 1, got %d", cfg.Approval.MaxLevel)
	}
	if cfg.Approval.MinScore >= cfg.Approval.MaxScore {
		return nil, fmt.Errorf("approval score bounds are inverted: [%d, %d]", cfg.Approval.MinScore, cfg.Approval.MaxScore)
	}

	return &cfg, nil
}
