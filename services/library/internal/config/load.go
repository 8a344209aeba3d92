package config

import "github.com/andrnaufal/perpustakaan/pkg/config"

const defaultPort = 5000

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load(defaultPort)

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return ServiceConfig{Config: cfg}
}
