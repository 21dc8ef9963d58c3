package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = timeout
	}
}

// WithStorage picks the store backend: StoragePostgres or StorageMemory.
func WithStorage(storage string) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}
