package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	URL         string
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	Audience    string
	ExpiryHours int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// ConnString returns DATABASE_URL when set, otherwise a keyword/value DSN
// assembled from the individual DB_* settings.
func (c DatabaseConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "audioathlete-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("JWT_ISSUER", "audioathlete-api")
	v.SetDefault("JWT_AUDIENCE", "audioathlete-app")
	v.SetDefault("JWT_EXPIRY_HOURS", 8)
	v.SetDefault("CORS_ORIGIN", "*")

	// .env is optional, the environment alone is enough in containers
	if _, err := os.Stat(".env"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			URL:         v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
			Audience:    v.GetString("JWT_AUDIENCE"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ORIGIN")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.App.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.JWT.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER must not be empty"))
	}
	if c.JWT.Audience == "" {
		errs = append(errs, errors.New("JWT_AUDIENCE must not be empty"))
	}
	if c.JWT.ExpiryHours <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY_HOURS must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
