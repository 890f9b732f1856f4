package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	midtransSandboxAPI  = "https://api.sandbox.midtrans.com"
	midtransSandboxSnap = "https://app.sandbox.midtrans.com"
	midtransProdAPI     = "https://api.midtrans.com"
	midtransProdSnap    = "https://app.midtrans.com"
)

// Config holds everything read from the environment. It is built once in
// main and passed down explicitly; nothing else reads os.Getenv.
type Config struct {
	DatabaseURL string

	RedisHost     string
	RedisPort     string
	RedisDB       int
	RedisPassword string

	MidtransServerKey string
	MidtransClientKey string
	MidtransAPIURL    string
	MidtransSnapURL   string

	SecretKey   string
	AdminAPIKey string

	Development bool
	Port        string
}

// Load reads the configuration from the environment. Call godotenv.Load
// first if a .env file should be honoured.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisHost:         os.Getenv("REDIS_HOST"),
		RedisPort:         os.Getenv("REDIS_PORT"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),
		SecretKey:         os.Getenv("SECRET_KEY"),
		AdminAPIKey:       os.Getenv("ADMIN_API_KEY"),
		Port:              os.Getenv("PORT"),
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.SecretKey == "" {
		return cfg, fmt.Errorf("SECRET_KEY is not set")
	}
	if cfg.MidtransServerKey == "" {
		return cfg, fmt.Errorf("MIDTRANS_SERVER_KEY is not set")
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	cfg.Development, _ = strconv.ParseBool(os.Getenv("APP_DEVELOPMENT"))
	if cfg.Development {
		cfg.MidtransAPIURL = midtransSandboxAPI
		cfg.MidtransSnapURL = midtransSandboxSnap
	} else {
		cfg.MidtransAPIURL = midtransProdAPI
		cfg.MidtransSnapURL = midtransProdSnap
	}

	if cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg, nil
}

// RedisAddr returns host:port for the redis client.
func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
