// Package config loads process configuration from defaults, a .env file,
// CALC_* environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CALC"

// Keys understood by Load. Flags bound with BindFlags use the same names with
// "-" in place of "_".
const (
	KeyHost             = "host"
	KeyPort             = "port"
	KeyLogLevel         = "log_level"
	KeyShutdownTimeout  = "shutdown_timeout"
	KeyTelemetryEnabled = "telemetry_enabled"
)

type Config struct {
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	LogLevel         string        `mapstructure:"log_level"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	TelemetryEnabled bool          `mapstructure:"telemetry_enabled"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             8080,
		LogLevel:         "info",
		ShutdownTimeout:  5 * time.Second,
		TelemetryEnabled: true,
	}
}

// New returns a viper instance with defaults registered and CALC_* variables
// bound, ready for flags to be bound on top.
func New() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyHost, d.Host)
	v.SetDefault(KeyPort, d.Port)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyShutdownTimeout, d.ShutdownTimeout)
	v.SetDefault(KeyTelemetryEnabled, d.TelemetryEnabled)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range 1-65535", c.Port))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr is the listen address host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LoadDotEnv loads environment variables from the given files, or .env when
// none are given. Missing files are ignored and existing process environment
// variables are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		err := godotenv.Load(p)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", p, err)
	}
	return nil
}
