// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"dashboard/store"

	"github.com/labstack/gommon/log"
)

const (
	DevEnv = "dev"
	ProEnv = "pro"
)

type Config struct {
	Environment   string  // ENV (default "pro")
	Address       string  // ADDRESS_LISTEN (default ":8080" in dev; empty = autocert TLS on :443)
	WhitelistHost string  // WHITELIST_HOST (optional, restricts autocert)
	CertCacheDir  string  // CERT_CACHE_DIR (default "/var/www/.cache")
	DBDriver      string  // DB_DRIVER (sqlite|postgres, default "sqlite")
	DBURL         string  // DB_URL (default "./dashboard.db" for sqlite)
	NATSURL       string  // NATS_URL (optional, empty = no events)
	LogLevel      log.Lvl // LOG_LEVEL (debug|info|warn|error|off, default "info")
}

func Load() (*Config, error) {
	c := &Config{
		Environment:   envOrDefault("ENV", ProEnv),
		Address:       os.Getenv("ADDRESS_LISTEN"),
		WhitelistHost: os.Getenv("WHITELIST_HOST"),
		CertCacheDir:  envOrDefault("CERT_CACHE_DIR", "/var/www/.cache"),
		DBDriver:      envOrDefault("DB_DRIVER", store.DriverSQLite),
		DBURL:         os.Getenv("DB_URL"),
		NATSURL:       os.Getenv("NATS_URL"),
	}

	if c.Environment != DevEnv && c.Environment != ProEnv {
		return nil, fmt.Errorf("ENV must be %q or %q, got %q", DevEnv, ProEnv, c.Environment)
	}
	if c.Environment == DevEnv && c.Address == "" {
		c.Address = ":8080"
	}

	switch c.DBDriver {
	case store.DriverSQLite:
		if c.DBURL == "" {
			c.DBURL = "./dashboard.db"
		}
	case store.DriverPostgres:
		if c.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver)
	}

	lvl, err := parseLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	c.LogLevel = lvl

	return c, nil
}

func parseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL: unknown level %q", s)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
