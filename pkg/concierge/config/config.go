package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/concierge/pkg/concierge/synth"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Store drivers.
const (
	DriverNone     = "none"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config is the application configuration shared by the commands.
type Config struct {
	Dictionary string  `yaml:"dictionary"`
	Pricing    string  `yaml:"pricing"`
	Logging    Logging `yaml:"logging"`
	Store      Store   `yaml:"store"`
}

// Logging selects the zap level and encoding.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Store selects the order archive backend.
type Store struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`     // sqlite
	DSN      string `yaml:"dsn"`      // postgres
	Addr     string `yaml:"addr"`     // redis
	Password string `yaml:"password"` // redis
	DB       int    `yaml:"db"`       // redis
	Prefix   string `yaml:"prefix"`   // redis
}

// Enabled reports whether a backend other than "none" is selected.
func (s Store) Enabled() bool {
	d := strings.ToLower(strings.TrimSpace(s.Driver))
	return d != "" && d != DriverNone
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Pricing: string(synth.PricingCategory),
		Logging: Logging{Level: "info", Format: "console"},
		Store:   Store{Driver: DriverNone},
	}
}

// Load reads a YAML config file over the defaults and applies CONCIERGE_*
// environment overrides. The result is not validated: callers layer dotenv
// and flag overrides first and call Validate last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvFile returns a lookup that consults the process environment first and
// then the dotenv file at path. A missing file yields the plain process
// environment.
func EnvFile(path string) (LookupFunc, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.LookupEnv, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides fields from CONCIERGE_* variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("CONCIERGE_DICTIONARY", &c.Dictionary)
	str("CONCIERGE_PRICING", &c.Pricing)
	str("CONCIERGE_LOG_LEVEL", &c.Logging.Level)
	str("CONCIERGE_LOG_FORMAT", &c.Logging.Format)
	str("CONCIERGE_STORE_DRIVER", &c.Store.Driver)
	str("CONCIERGE_STORE_PATH", &c.Store.Path)
	str("CONCIERGE_STORE_DSN", &c.Store.DSN)
	str("CONCIERGE_REDIS_ADDR", &c.Store.Addr)
	str("CONCIERGE_REDIS_PASSWORD", &c.Store.Password)
	str("CONCIERGE_REDIS_PREFIX", &c.Store.Prefix)
	if v, ok := lookup("CONCIERGE_REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CONCIERGE_REDIS_DB: %v", ErrInvalidConfig, err)
		}
		c.Store.DB = n
	}
	return nil
}

// Validate checks the pricing mode and that the chosen store driver has
// what it needs.
func (c *Config) Validate() error {
	if _, err := synth.ParsePricing(c.Pricing); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case "", DriverNone, DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store.path is required for sqlite", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: store.dsn is required for postgres", ErrInvalidConfig)
		}
	case DriverRedis:
		if c.Store.Addr == "" {
			return fmt.Errorf("%w: store.addr is required for redis", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	return nil
}
