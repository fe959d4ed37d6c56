package config

import (
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr       string `long:"http-addr" env:"HTTP_ADDR" default:":8080" description:"HTTP listen address"`
	PostgresURL    string `long:"postgres-url" env:"POSTGRES_URL" description:"Postgres connection string"`
	RedisAddr      string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address"`
	GatewayAddr    string `long:"gateway-addr" env:"GATEWAY_ADDR" description:"Payment and seat reservation gateway address"`
	JaegerEndpoint string `long:"jaeger-endpoint" env:"JAEGER_ENDPOINT" description:"Jaeger collector endpoint, defaults to the gateway"`
	LogLevel       string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level"`
}

// Load reads the configuration from args and the environment. Flags take precedence.
// Asking for --help returns a *flags.Error of type flags.ErrHelp.
func Load(args []string) (Config, error) {
	var cfg Config

	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	if c.PostgresURL == "" {
		errs = append(errs, errors.New("POSTGRES_URL is required"))
	}
	if c.RedisAddr == "" {
		errs = append(errs, errors.New("REDIS_ADDR is required"))
	}
	if c.GatewayAddr == "" {
		errs = append(errs, errors.New("GATEWAY_ADDR is required"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
	}

	return errors.Join(errs...)
}

func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}

// IsHelp reports whether err was returned because help was requested.
func IsHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}
