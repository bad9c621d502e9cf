package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	TMDB      TMDBConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	SecretKey   string
	CSRFEnabled bool
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	CookieName  string
	ExpiryHours int
	Secure      bool
}

// Expiry is the lifetime of a login session.
func (c SessionConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type TMDBConfig struct {
	APIKey   string
	BaseURL  string
	ImageURL string
	Language string
	Timeout  time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence over it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-catalog")
	viper.SetDefault("PORT", "5004")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CSRF_ENABLED", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_COOKIE_NAME", "movie_catalog_session")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24*7)
	viper.SetDefault("SESSION_SECURE", false)
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p/w500")
	viper.SetDefault("TMDB_LANGUAGE", "en-US")
	viper.SetDefault("TMDB_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			SecretKey:   viper.GetString("SECRET_KEY"),
			CSRFEnabled: viper.GetBool("CSRF_ENABLED"),
		},
		Database: DatabaseConfig{
			URL:      viper.GetString("DATABASE_URL"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			CookieName:  viper.GetString("SESSION_COOKIE_NAME"),
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
			Secure:      viper.GetBool("SESSION_SECURE"),
		},
		TMDB: TMDBConfig{
			APIKey:   viper.GetString("TMDB_API_KEY"),
			BaseURL:  viper.GetString("TMDB_BASE_URL"),
			ImageURL: viper.GetString("TMDB_IMAGE_URL"),
			Language: viper.GetString("TMDB_LANGUAGE"),
			Timeout:  time.Duration(viper.GetInt("TMDB_TIMEOUT_SECONDS")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if config.App.SecretKey == "" {
		return nil, errors.New("SECRET_KEY is required")
	}
	if config.TMDB.APIKey == "" {
		return nil, errors.New("TMDB_API_KEY is required")
	}

	return config, nil
}
