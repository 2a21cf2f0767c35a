package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		PublicURL          string   `mapstructure:"public_url"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Backend struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"backend"`

	Session struct {
		Secret     string `mapstructure:"secret"`
		CookieName string `mapstructure:"cookie_name"`
		Issuer     string `mapstructure:"issuer"`
	} `mapstructure:"session"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.public_url", "http://localhost:3000")
	v.SetDefault("backend.base_url", "http://localhost:8001")
	v.SetDefault("backend.timeout_seconds", 30)
	v.SetDefault("session.cookie_name", "gym_session")
	v.SetDefault("session.issuer", "gym-frontend")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override server settings from environment variables
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}
	if publicURL := os.Getenv("PUBLIC_URL"); publicURL != "" {
		cfg.Server.PublicURL = publicURL
	}

	// Backend base URL comes from the environment in every deployment
	if baseURL := os.Getenv("BACKEND_URL"); baseURL != "" {
		cfg.Backend.BaseURL = baseURL
	}

	// Override session secret from environment if not set
	if cfg.Session.Secret == "" || cfg.Session.Secret == "${SESSION_SECRET}" {
		cfg.Session.Secret = os.Getenv("SESSION_SECRET")
		if cfg.Session.Secret == "" {
			log.Fatal("SESSION_SECRET not found in environment or config file")
		}
	}

	return &cfg
}
