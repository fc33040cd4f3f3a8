package app

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Storage backends selectable with --storage.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config contains global runtime configuration.
type Config struct {
	Workspace string
	LogLevel  string
	LogFormat string
	Storage   string
	Timeout   time.Duration

	// Nameserver ("host:port") used for active resolution. Empty means the
	// system resolver.
	Nameserver string
}

// MustLoadConfigFromViper builds Config from Viper-bound flags/env.
func MustLoadConfigFromViper() Config {
	ws := viper.GetString("workspace")
	if ws == "" {
		panic("workspace is empty")
	}
	return Config{
		Workspace: ws,
		LogLevel:  viper.GetString("log_level"),
		LogFormat: viper.GetString("log_format"),
		Storage:   viper.GetString("storage"),
		Timeout:   viper.GetDuration("timeout"),

		Nameserver: viper.GetString("nameserver"),
	}
}

// Validate returns error if configuration is invalid.
func (c Config) Validate() error {
	if c.Workspace == "" {
		return fmt.Errorf("workspace cannot be empty")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	switch c.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s, %s or %s)", c.Storage, StorageFile, StorageSQLite, StorageMemory)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}
