package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the service environment. SESSION_SECRET must match the secret
// the auth surface signs session tokens with, or every admission fails.
type Config struct {
	Addr          string `envconfig:"ADDR" default:":8080"`
	DatabaseDSN   string `envconfig:"DB_DSN" required:"true"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
}

// Load reads the environment, after a best-effort .env load for local runs.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
