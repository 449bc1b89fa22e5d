package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Audit    AuditConfig

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR" envDefault:"localhost:8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type UpstreamConfig struct {
	BaseURL string        `env:"EXCHANGE_API_BASE_URL" envDefault:"https://api.privatbank.ua/p24api/exchange_rates"`
	Timeout time.Duration `env:"EXCHANGE_API_TIMEOUT" envDefault:"10s"`
}

type CacheConfig struct {
	File    string `env:"CACHE_FILE" envDefault:"cache.json"`
	Workers int    `env:"CACHE_WORKERS" envDefault:"4"`
}

type AuditConfig struct {
	File string `env:"EXCHANGE_LOG_FILE" envDefault:"log_exchange.log"`
}

func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment config: %w", err)
	}
	return config, nil
}
