package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StorageDriverMemory = "memory"
	StorageDriverYAML   = "yaml"
	StorageDriverMySQL  = "mysql"
	StorageDriverSQLite = "sqlite"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Outputs  OutputsConfig  `mapstructure:"outputs"`
}

type ServerConfig struct {
	Port      int             `mapstructure:"port" validate:"min=1,max=65535"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig limits requests per client IP. Zero disables the limiter.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"min=0"`
}

type StorageConfig struct {
	Driver        string `mapstructure:"driver" validate:"oneof=memory yaml mysql sqlite"`
	YAMLDirectory string `mapstructure:"yaml_directory" validate:"required_if=Driver yaml"`
	SQLitePath    string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ReadyAttempts   int               `mapstructure:"ready_attempts" validate:"min=1"`
	ReadyDelayMs    int               `mapstructure:"ready_delay_ms" validate:"min=0"`
}

// CatalogConfig points at the content catalog. A URL takes precedence over a directory.
type CatalogConfig struct {
	Directory      string `mapstructure:"directory" validate:"required_without=URL"`
	URL            string `mapstructure:"url" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
	Watch          bool   `mapstructure:"watch"`
}

type OutputsConfig struct {
	NotesDirectory string `mapstructure:"notes_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/learnpath")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit.requests_per_minute", 0)
	v.SetDefault("storage.driver", StorageDriverMemory)
	v.SetDefault("storage.yaml_directory", filepath.Join("data", "progress"))
	v.SetDefault("storage.sqlite_path", filepath.Join("data", "learnpath.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.ready_attempts", 5)
	v.SetDefault("database.ready_delay_ms", 500)
	v.SetDefault("catalog.directory", "catalog")
	v.SetDefault("catalog.timeout_seconds", 10)
	v.SetDefault("catalog.watch", false)
	v.SetDefault("outputs.notes_directory", filepath.Join("outputs", "notes"))

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("catalog.url", "LEARNPATH_CATALOG_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind LEARNPATH_CATALOG_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
