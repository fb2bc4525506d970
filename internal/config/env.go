package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/herdemi/internal/domain"
)

// Environment variable names read by LoadEnv.
const (
	EnvLogLevel  = "HERDEMI_LOG_LEVEL"
	EnvLogPretty = "HERDEMI_LOG_PRETTY"
	EnvAddr      = "HERDEMI_ADDR"
)

// DefaultAddr is the API listen address when none is configured.
const DefaultAddr = ":8080"

// Env holds process settings that may come from the environment or a .env file.
type Env struct {
	LogLevel  string
	LogPretty bool
	Addr      string

	prettySet bool
}

// LoadEnv reads the optional .env files (default ".env") into the process
// environment, then collects the herdemi settings. Missing files are ignored;
// variables already set in the environment win. A file that fails to parse is
// reported in the error, and the settings are still collected.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var errs []error
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			errs = append(errs, fmt.Errorf("failed to load %s: %w", f, err))
		}
	}

	env := Env{
		LogLevel: strings.TrimSpace(os.Getenv(EnvLogLevel)),
		Addr:     strings.TrimSpace(os.Getenv(EnvAddr)),
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvLogPretty)); err == nil {
		env.LogPretty = v
		env.prettySet = true
	}
	if env.Addr == "" {
		env.Addr = DefaultAddr
	}
	return env, errors.Join(errs...)
}

// ApplyLogging overlays environment logging settings onto cfg. Environment
// values take precedence over the configuration file.
func (e Env) ApplyLogging(cfg domain.LoggingConfig) domain.LoggingConfig {
	if e.LogLevel != "" {
		cfg.Level = e.LogLevel
	}
	if e.prettySet {
		cfg.Pretty = e.LogPretty
	}
	return cfg
}
