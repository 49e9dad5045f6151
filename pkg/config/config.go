// Package config loads the command line configuration from the environment.
//
// Variables use the GEOFEED_ prefix. A .env file in the working directory is
// read first when present; variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable name.
const Prefix = "GEOFEED_"

// Errors returned by Load.
var (
	ErrParse   = errors.New("config: parse environment")
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the command line configuration.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn" validate:"oneof=trace debug info warn error disabled"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console" validate:"oneof=json console"`

	// Schema is used when no schema flag is given.
	Schema string `env:"SCHEMA" envDefault:"final" validate:"required"`

	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	FetchRetries uint64        `env:"FETCH_RETRIES" envDefault:"3" validate:"lte=10"`
	UserAgent    string        `env:"USER_AGENT" envDefault:"geofeed-validator" validate:"required"`

	// CodeTable is an optional YAML file with extra subdivision codes.
	CodeTable string `env:"CODE_TABLE" validate:"omitempty,filepath"`
	CacheSize int    `env:"CACHE_SIZE" envDefault:"1024" validate:"gte=0"`

	// Workers bounds parallel validation of several sources; 0 means one
	// per CPU.
	Workers int `env:"WORKERS" envDefault:"4" validate:"gte=0,lte=64"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the given .env files, or ".env" when none are given, and parses
// the environment. Missing .env files are ignored.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom parses cfg from the given variables instead of the process
// environment. Names include the prefix.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Join(ErrInvalid, err)
	}
	return &cfg, nil
}
