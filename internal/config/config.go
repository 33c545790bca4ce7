package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "chargerelay/libs/config"
)

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Port string `yaml:"port" env:"HTTP_PORT"`
}

// DatabaseConfig holds the Postgres connection string and pool limits.
type DatabaseConfig struct {
	DSN          string `yaml:"dsn" env:"POSTGRES_DSN"`
	MaxOpenConns int    `yaml:"maxOpenConns" env:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns int    `yaml:"maxIdleConns" env:"POSTGRES_MAX_IDLE_CONNS"`
}

// RedisConfig holds the active session cache settings.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	TTL      int    `yaml:"ttlSeconds" env:"REDIS_TTL"`
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret    string `yaml:"jwtSecret" env:"JWT_SECRET"`
	TokenTTLMins int    `yaml:"tokenTtlMinutes" env:"TOKEN_TTL_MINUTES"`
	BcryptCost   int    `yaml:"bcryptCost" env:"BCRYPT_COST"`
}

// PricingConfig overrides the published tariff.
type PricingConfig struct {
	UnitPricePerKWh       float64 `yaml:"unitPricePerKwh" env:"UNIT_PRICE_PER_KWH"`
	FallbackRateKWhPerMin float64 `yaml:"fallbackRateKwhPerMin" env:"FALLBACK_RATE_KWH_PER_MIN"`
	DefaultBatteryKWh     float64 `yaml:"defaultBatteryKwh" env:"DEFAULT_BATTERY_KWH"`
}

// WSConfig holds the live status feed settings.
type WSConfig struct {
	PingIntervalSec int `yaml:"pingIntervalSeconds" env:"WS_PING_INTERVAL"`
}

// Config defines server configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Pricing  PricingConfig  `yaml:"pricing"`
	WS       WSConfig       `yaml:"ws"`
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{Port: "8080"},
		Database: DatabaseConfig{
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  86400,
		},
		Auth: AuthConfig{
			TokenTTLMins: 60 * 24,
		},
		WS: WSConfig{PingIntervalSec: 30},
	}

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// ActiveSessionTTL returns ttl as duration.
func (c *Config) ActiveSessionTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Redis.TTL) * time.Second
}

// TokenTTL returns the access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTLMins <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Auth.TokenTTLMins) * time.Minute
}

// PingInterval returns the websocket keepalive interval.
func (c *Config) PingInterval() time.Duration {
	if c.WS.PingIntervalSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.WS.PingIntervalSec) * time.Second
}
