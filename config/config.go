// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/postbox/internal/validation"
	"github.com/tochemey/postbox/log"
	"github.com/tochemey/postbox/mailbox"
)

// Prefix is the prefix of every environment variable read by Load
const Prefix = "POSTBOX_"

// ErrParsingConfig is returned when the environment cannot be parsed into a Config
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds the settings of a postbox process
type Config struct {
	// LogLevel is one of debug, info, warn, error, fatal and panic
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// MailboxCapacity is the number of message slots of each mailbox.
	// It must be a power of two of at least 2.
	MailboxCapacity int `env:"MAILBOX_CAPACITY" envDefault:"16"`
	// RingCapacity is the size in bytes of the byte ring. It must be a power of two.
	RingCapacity int `env:"RING_CAPACITY" envDefault:"4096"`
	// MetricsEnabled turns the OpenTelemetry instruments of the registry on
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"false"`
	// Subscribers is the number of subscribing tasks run by the demo
	Subscribers int `env:"SUBSCRIBERS" envDefault:"4"`
	// Messages is the number of messages published by the demo
	Messages int `env:"MESSAGES" envDefault:"32"`

	logger        log.Logger
	meterProvider otelmetric.MeterProvider
}

// Default returns the configuration obtained with an empty environment
func Default() *Config {
	config := new(Config)
	// the defaults are static, parsing them cannot fail
	_ = env.ParseWithOptions(config, env.Options{
		Prefix:      Prefix,
		Environment: map[string]string{},
	})
	return config
}

// Load reads the configuration from the POSTBOX_* environment variables.
// The given dotenv files are loaded first, they never override a variable
// already set. Without files an optional .env in the working directory is
// used when present.
func Load(files ...string) (*Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	config := new(Config)
	if err := env.ParseWithOptions(config, env.Options{Prefix: Prefix}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration and returns all its violations
func (c *Config) Validate() error {
	_, levelErr := log.ParseLevel(c.LogLevel)
	return validation.New(validation.AllErrors()).
		AddAssertion(levelErr == nil, fmt.Sprintf("the [log level] %q is unknown", c.LogLevel)).
		AddValidator(validation.NewCapacityValidator("mailbox capacity", c.MailboxCapacity, 2)).
		AddValidator(validation.NewCapacityValidator("ring capacity", c.RingCapacity, 1)).
		AddAssertion(c.Subscribers > 0, "the [subscribers] must be positive").
		AddAssertion(c.Messages > 0, "the [messages] must be positive").
		Validate()
}

// Level returns the parsed log level, InfoLevel when it is not set
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Logger returns the logger set with SetLogger or a JSON logger writing to
// stderr at the configured level
func (c *Config) Logger() log.Logger {
	if c.logger != nil {
		return c.logger
	}
	return log.NewZap(c.Level(), os.Stderr)
}

// SetLogger overrides the logger built from LogLevel
func (c *Config) SetLogger(logger log.Logger) *Config {
	c.logger = logger
	return c
}

// SetMeterProvider sets the meter provider used when metrics are enabled.
// The global provider is used otherwise.
func (c *Config) SetMeterProvider(provider otelmetric.MeterProvider) *Config {
	c.meterProvider = provider
	return c
}

// RegistryOptions turns the configuration into mailbox registry options
func (c *Config) RegistryOptions() []mailbox.Option {
	opts := []mailbox.Option{mailbox.WithLogger(c.Logger())}
	if c.MetricsEnabled {
		if c.meterProvider != nil {
			opts = append(opts, mailbox.WithMeterProvider(c.meterProvider))
		} else {
			opts = append(opts, mailbox.WithMetrics())
		}
	}
	return opts
}
