// Package config loads and validates service configuration from the
// environment and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds the process-wide configuration. It is built once at startup
// and passed explicitly; nothing mutates it afterwards.
type Config struct {
	// ServerAddress is the address the HTTP server listens on (e.g. :8080).
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	// DatabaseDSN is the sqlite DSN.
	DatabaseDSN string `mapstructure:"DATABASE_DSN"`

	// JWTSecretKey is the symmetric signing secret. Required.
	JWTSecretKey string `mapstructure:"JWT_SECRET_KEY"`
	// JWTAlgorithm is the signing algorithm name (e.g. HS256). Required.
	JWTAlgorithm string `mapstructure:"JWT_ALGORITHM"`
	// JWTLifetimeHours is the access token lifetime in hours. Required.
	JWTLifetimeHours int `mapstructure:"JWT_ACCESS_TOKEN_LIFETIME_HOURS"`

	// Cloudinary credentials, required by the book service only.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	// CloudinaryFolder is the upload folder (default "books").
	CloudinaryFolder string `mapstructure:"CLOUDINARY_UPLOAD_FOLDER"`
}

// Load reads .env (if present), then builds Config from the environment.
// Missing .env is ignored; env vars override .env. The JWT trio is required
// and a missing value refuses startup.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("DATABASE_DSN", "file:bookverse.db?cache=shared")
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_ALGORITHM", "")
	v.SetDefault("JWT_ACCESS_TOKEN_LIFETIME_HOURS", 0)
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("CLOUDINARY_UPLOAD_FOLDER", "books")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecretKey == "" {
		return nil, errors.New("config: JWT_SECRET_KEY not found in environment variables")
	}
	if cfg.JWTAlgorithm == "" {
		return nil, errors.New("config: JWT_ALGORITHM not found in environment variables")
	}
	if cfg.JWTLifetimeHours <= 0 {
		return nil, errors.New("config: JWT_ACCESS_TOKEN_LIFETIME_HOURS not found in environment variables")
	}

	return &cfg, nil
}

// TokenLifetime returns the configured token lifetime.
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.JWTLifetimeHours) * time.Hour
}

// Redacted returns a loggable view of the configuration with secrets
// masked.
func (c *Config) Redacted() map[string]any {
	return map[string]any{
		"server_address":           c.ServerAddress,
		"database_dsn":             c.DatabaseDSN,
		"jwt_secret_key":           mask(c.JWTSecretKey),
		"jwt_algorithm":            c.JWTAlgorithm,
		"jwt_lifetime_hours":       c.JWTLifetimeHours,
		"cloudinary_cloud_name":    c.CloudinaryCloudName,
		"cloudinary_api_key":       mask(c.CloudinaryAPIKey),
		"cloudinary_api_secret":    mask(c.CloudinaryAPISecret),
		"cloudinary_upload_folder": c.CloudinaryFolder,
	}
}

func mask(value string) string {
	if value == "" {
		return ""
	}
	return "********"
}

// RequireCloudinary validates the Cloudinary credential trio. The book
// service calls this at startup; the auth service does not need it.
func (c *Config) RequireCloudinary() error {
	if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
		return errors.New("config: Cloudinary configuration missing, check environment variables")
	}
	return nil
}
