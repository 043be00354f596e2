package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig `mapstructure:"log"`
	Database  DatabaseConfig
	JWT       JWTConfig
	HashID    HashIDConfig `mapstructure:"hashid"`
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	Mail      MailConfig
	Rollbar   RollbarConfig   `mapstructure:"rollbar"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Stats     StatsConfig     `mapstructure:"stats"`
	Seed      SeedConfig      `mapstructure:"seed"`

	// Runtime flags, set from the command line rather than the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

// LogConfig controls the zap logger. An empty Level follows the server mode.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Console    bool   `mapstructure:"console"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig holds two buckets: a global one applied to every request
// and a tighter window applied to the /api tree.
type RateLimitConfig struct {
	MaxRequests      int `mapstructure:"max_requests"`
	WindowMinutes    int `mapstructure:"window_minutes"`
	APIMaxRequests   int `mapstructure:"api_max_requests"`
	APIWindowMinutes int `mapstructure:"api_window_minutes"`
}

type ServerConfig struct {
	Port    string
	Mode    string
	Host    string
	Version string
}

type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
	SSLMode   string `mapstructure:"sslmode"`
	// Path is used by the sqlite driver only.
	Path    string
	LogMode string `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type HashIDConfig struct {
	Secret string `mapstructure:"secret"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	ServiceName       string  `mapstructure:"service_name"`
	SampleRatio       float64 `mapstructure:"sample_ratio"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTL      int `mapstructure:"ttl_minutes"`
}

// MailConfig selects between the sendgrid transport and a console
// transport that only writes to the log.
type MailConfig struct {
	Provider        string `mapstructure:"provider"`
	SendgridAPIKey  string `mapstructure:"sendgrid_api_key"`
	From            string `mapstructure:"from"`
	FromName        string `mapstructure:"from_name"`
	SuperAdmin      string `mapstructure:"super_admin"`
	GeneratedDomain string `mapstructure:"generated_domain"`
	ClientURL       string `mapstructure:"client_url"`
}

type RollbarConfig struct {
	Token       string `mapstructure:"token"`
	Environment string `mapstructure:"environment"`
}

type StatsConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}

type SeedConfig struct {
	File string `mapstructure:"file"`
}

func (c *Config) IsRelease() bool {
	return c.Server.Mode == "release"
}

func LoadConfig(path string) (*Config, error) {
	// .env is optional; values already present in the environment win.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LEARNING_CENTER")
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")
	v.BindEnv("database.path", "DATABASE_PATH")

	v.BindEnv("log.level", "LOG_LEVEL")

	// Secrets
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("hashid.secret", "HASH_SECRET")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// Mail
	v.BindEnv("mail.provider", "MAIL_PROVIDER")
	v.BindEnv("mail.sendgrid_api_key", "SENDGRID_API_KEY")
	v.BindEnv("mail.from", "MAIL_FROM")
	v.BindEnv("mail.super_admin", "SUPER_ADMIN_EMAIL")
	v.BindEnv("mail.client_url", "CLIENT_URL")

	// Rollbar
	v.BindEnv("rollbar.token", "ROLLBAR_TOKEN")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.local_path", "STORAGE_LOCAL_PATH")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.console", true)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "uploads")
	v.SetDefault("redis.ttl_minutes", 10)
	v.SetDefault("mail.provider", "console")
	v.SetDefault("mail.generated_domain", "phonetics.md")
	v.SetDefault("rate_limit.max_requests", 100)
	v.SetDefault("rate_limit.window_minutes", 15)
	v.SetDefault("rate_limit.api_max_requests", 250)
	v.SetDefault("rate_limit.api_window_minutes", 1)
	v.SetDefault("stats.retention_days", 365)
	v.SetDefault("seed.file", "configs/seed.yaml")
}

func (c *Config) validate() error {
	if c.HashID.Secret == "" {
		return fmt.Errorf("hashid secret is required")
	}
	if !c.IsRelease() {
		return nil
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if len(c.HashID.Secret) < 32 {
		return fmt.Errorf("hashid secret is too short (%d chars), must be at least 32 characters in release mode", len(c.HashID.Secret))
	}
	return nil
}
