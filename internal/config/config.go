package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Storage StorageConfig `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	FrontendURL    string   `mapstructure:"frontend_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	Source string `mapstructure:"source"`
}

type StorageConfig struct {
	Backend        string      `mapstructure:"backend"`
	Path           string      `mapstructure:"path"`
	MaxUploadBytes int64       `mapstructure:"max_upload_bytes"`
	Minio          MinioConfig `mapstructure:"minio"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type SessionConfig struct {
	Backend         string        `mapstructure:"backend"`
	Secret          string        `mapstructure:"secret"`
	TTL             time.Duration `mapstructure:"ttl"`
	CookieName      string        `mapstructure:"cookie_name"`
	Secure          bool          `mapstructure:"secure"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Redis           RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageLocal = "local"
	StorageMinio = "minio"

	SessionDatabase = "database"
	SessionRedis    = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.frontend_url", "http://localhost:3000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.source", "photogallery.db")

	v.SetDefault("storage.backend", StorageLocal)
	v.SetDefault("storage.path", "./uploads")
	v.SetDefault("storage.max_upload_bytes", 32<<20)
	v.SetDefault("storage.minio.endpoint", "localhost:9000")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "photos")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("session.backend", SessionDatabase)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.cleanup_interval", time.Hour)
	v.SetDefault("session.redis.url", "redis://localhost:6379/0")
}

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown db.driver %q", c.DB.Driver)
	}
	if c.DB.Source == "" {
		return errors.New("db.source must be set")
	}

	switch c.Storage.Backend {
	case StorageLocal:
		if c.Storage.Path == "" {
			return errors.New("storage.path must be set")
		}
	case StorageMinio:
		if c.Storage.Minio.Endpoint == "" || c.Storage.Minio.Bucket == "" {
			return errors.New("storage.minio.endpoint and storage.minio.bucket must be set")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return errors.New("storage.max_upload_bytes must be positive")
	}

	switch c.Session.Backend {
	case SessionDatabase, SessionRedis:
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret must be set")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
