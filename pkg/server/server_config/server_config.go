package server_config

import (
	"log/slog"
	"time"
)

const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
)

type Config struct {
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	ErrorLogger       *slog.Logger
}

type Option func(*Config)

func New(options ...Option) *Config {
	config := &Config{
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
	}

	for _, option := range options {
		if option != nil {
			option(config)
		}
	}

	return config
}

func WithReadHeaderTimeout(readHeaderTimeout time.Duration) Option {
	return func(config *Config) {
		config.ReadHeaderTimeout = readHeaderTimeout
	}
}

func WithIdleTimeout(idleTimeout time.Duration) Option {
	return func(config *Config) {
		config.IdleTimeout = idleTimeout
	}
}

func WithShutdownTimeout(shutdownTimeout time.Duration) Option {
	return func(config *Config) {
		config.ShutdownTimeout = shutdownTimeout
	}
}

// WithErrorLogger routes the connection-level errors of the HTTP server to a structured logger.
func WithErrorLogger(logger *slog.Logger) Option {
	return func(config *Config) {
		config.ErrorLogger = logger
	}
}
